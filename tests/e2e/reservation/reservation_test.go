//go:build e2e

package reservation_test

import (
	"fmt"
	"net/http"
	"sync"
	"testing"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/handler/dto/response"
	"campsite-booking/internal/handler/httperr"
	"campsite-booking/internal/usecase/shared"
	"campsite-booking/tests/common/builder"
	"campsite-booking/tests/common/dbtest"
	"campsite-booking/tests/common/httptest"
	"campsite-booking/tests/common/testutil"
	"campsite-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reservationsURL = "/api/reservations"
	reservationURL  = "/api/reservations/%d"
	availabilityURL = "/api/availability?from=%s&to=%s"
)

type ReservationSuite struct {
	e2e.SharedSuite
}

func (s *ReservationSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestReservationSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReservationSuite))
}

func day(offset int) string {
	return daterange.Format(daterange.AddDays(builder.FixedToday, offset))
}

func (s *ReservationSuite) create(t *testing.T, arrival, departure int) *response.ReservationResponse {
	t.Helper()

	reqBody := builder.NewReservationBuilder().WithDays(arrival, departure).BuildCreateRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created response.ReservationResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return &created
}

func (s *ReservationSuite) freeRanges(t *testing.T, from, to int) []response.DateRangeResponse {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(availabilityURL, day(from), day(to)), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body response.AvailabilityResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &body))
	return body.AvailableDates
}

// =============================================================================
// TestCreateReservation - POST /api/reservations
// =============================================================================

func (s *ReservationSuite) TestCreateReservation() {
	s.Run("Normal case: reservation is created and an event is queued", func() {
		t := s.T()

		reqBody := builder.NewReservationBuilder().WithDays(5, 7).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var got response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &got))
		require.NotZero(t, got.ID)
		httptest.AssertHeaders(t, w, map[string]string{
			"Location": fmt.Sprintf(reservationURL, got.ID),
		})

		arrival, departure := day(5), day(7)
		want := response.ReservationResponse{
			ID:            got.ID,
			Version:       0,
			Name:          "Taro Yamada",
			Email:         "taro@example.com",
			Status:        "ACTIVE",
			ArrivalDate:   &arrival,
			DepartureDate: &departure,
		}
		if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(response.ReservationResponse{}, "CreatedAt", "UpdatedAt")); diff != "" {
			t.Errorf("response mismatch (-want +got):\n%s", diff)
		}

		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, shared.TopicReservationCreated))
	})

	s.Run("Exception case: overlapping stay is rejected", func() {
		t := s.T()
		dbtest.CreateTestReservation(t, s.DB, "Hanako", "hanako@example.com",
			daterange.AddDays(builder.FixedToday, 5), daterange.AddDays(builder.FixedToday, 7))

		reqBody := builder.NewReservationBuilder().WithDays(6, 8).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)

		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Requested date is not available")
		httptest.AssertErrorCode(t, w, http.StatusConflict, httperr.CodeDateUnavailable)
		require.Zero(t, dbtest.CountNotificationJobs(t, s.DB, shared.TopicReservationCreated))
	})

	s.Run("Exception case: stay touching an existing departure day is rejected", func() {
		t := s.T()
		s.create(t, 5, 7)

		reqBody := builder.NewReservationBuilder().WithDays(7, 8).BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)

		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Requested date is not available")
	})

	s.Run("Normal case: stay starting the day after a departure is accepted", func() {
		t := s.T()
		s.create(t, 5, 7)
		s.create(t, 8, 9)
	})

	s.Run("Exception case: booking rules are enforced", func() {
		cases := map[string][2]int{
			"arrival today":         {0, 1},
			"four nights":           {5, 9},
			"beyond one month":      {32, 33},
			"departure before stay": {6, 5},
		}
		for name, days := range cases {
			reqBody := builder.NewReservationBuilder().WithDays(days[0], days[1]).BuildCreateRequestDTO()
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, reservationsURL, reqBody)
			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request")
			require.Equal(s.T(), http.StatusBadRequest, w.Code, name)
		}
	})

	s.Run("Exception case: missing email is rejected", func() {
		t := s.T()
		reqBody := testutil.DtoMap(t, builder.NewReservationBuilder().BuildCreateRequestDTO(),
			testutil.Field("email", nil))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)

		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("Concurrency: only one of many identical requests wins", func() {
		t := s.T()
		const clients = 10

		reqBody := builder.NewReservationBuilder().WithDays(10, 12).BuildCreateRequestDTO()
		codes := make([]int, clients)

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := range clients {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody)
				codes[i] = w.Code
			}()
		}
		close(start)
		wg.Wait()

		counts := map[int]int{}
		for _, c := range codes {
			counts[c]++
		}
		require.Equal(t, map[int]int{http.StatusCreated: 1, http.StatusConflict: clients - 1}, counts)
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, shared.TopicReservationCreated))
	})
}

// =============================================================================
// TestGetReservation - GET /api/reservations/:id
// =============================================================================

func (s *ReservationSuite) TestGetReservation() {
	s.Run("Normal case: returns the stored reservation", func() {
		t := s.T()
		created := s.create(t, 5, 7)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, created.ID), nil)

		var got response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		if diff := cmp.Diff(*created, got, cmpopts.EquateApproxTime(0)); diff != "" {
			t.Errorf("response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Exception case: unknown id returns 404", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, fmt.Sprintf(reservationURL, 999), nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})

	s.Run("Exception case: non-numeric id returns 400", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, reservationsURL+"/abc", nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid reservation ID")
	})
}

// =============================================================================
// TestUpdateReservation - PATCH /api/reservations/:id
// =============================================================================

func (s *ReservationSuite) TestUpdateReservation() {
	s.Run("Normal case: moving a stay releases the old dates", func() {
		t := s.T()
		created := s.create(t, 5, 7)

		reqBody := map[string]any{"arrivalDate": day(10), "departureDate": day(12)}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(reservationURL, created.ID), reqBody)

		var got response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, int64(1), got.Version)
		require.Equal(t, day(10), *got.ArrivalDate)
		require.Equal(t, day(12), *got.DepartureDate)

		require.Equal(t, []response.DateRangeResponse{
			{From: day(2), To: day(9)},
			{From: day(13), To: day(14)},
		}, s.freeRanges(t, 2, 14))
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, shared.TopicReservationUpdated))
	})

	s.Run("Normal case: shifting onto its own dates is allowed", func() {
		t := s.T()
		created := s.create(t, 5, 7)

		reqBody := map[string]any{"arrivalDate": day(6), "departureDate": day(8)}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(reservationURL, created.ID), reqBody)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Normal case: contact change keeps the dates", func() {
		t := s.T()
		created := s.create(t, 5, 7)

		reqBody := map[string]any{"email": "new@example.com"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(reservationURL, created.ID), reqBody)

		var got response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, "new@example.com", got.Email)
		require.Equal(t, day(5), *got.ArrivalDate)
	})

	s.Run("Exception case: moving onto another reservation is rejected", func() {
		t := s.T()
		created := s.create(t, 5, 7)
		s.create(t, 10, 12)

		reqBody := map[string]any{"arrivalDate": day(11), "departureDate": day(13)}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(reservationURL, created.ID), reqBody)

		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Requested date is not available")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(reservationURL, created.ID), nil)
		var got response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, int64(0), got.Version)
		require.Equal(t, day(5), *got.ArrivalDate)
	})

	s.Run("Exception case: only one date is rejected", func() {
		t := s.T()
		created := s.create(t, 5, 7)

		reqBody := map[string]any{"arrivalDate": day(6)}
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(reservationURL, created.ID), reqBody)

		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "Invalid request")
	})

	s.Run("Exception case: unknown id returns 404", func() {
		reqBody := map[string]any{"name": "Jiro"}
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(reservationURL, 999), reqBody)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Reservation not found")
	})
}

// =============================================================================
// TestCancelReservation - DELETE /api/reservations/:id
// =============================================================================

func (s *ReservationSuite) TestCancelReservation() {
	s.Run("Normal case: cancelled dates become bookable again", func() {
		t := s.T()
		created := s.create(t, 5, 7)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(reservationURL, created.ID), nil)

		var got response.ReservationResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, "CANCELLED", got.Status)
		require.Nil(t, got.ArrivalDate)
		require.Equal(t, int64(1), got.Version)
		require.Equal(t, 1, dbtest.CountNotificationJobs(t, s.DB, shared.TopicReservationCancelled))

		s.create(t, 5, 7)
	})

	s.Run("Exception case: cancelling twice returns 409", func() {
		t := s.T()
		created := s.create(t, 5, 7)
		path := fmt.Sprintf(reservationURL, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, path, nil)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Reservation is already cancelled")
		httptest.AssertErrorCode(t, w, http.StatusConflict, httperr.CodeAlreadyCancelled)
	})

	s.Run("Exception case: updating a cancelled reservation returns 409", func() {
		t := s.T()
		created := s.create(t, 5, 7)
		path := fmt.Sprintf(reservationURL, created.ID)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, path, map[string]any{"name": "Jiro"})
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Reservation is already cancelled")
	})
}
