//go:build unit

package readstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/infra"
	"campsite-booking/internal/infra/readstore"
	sqlc "campsite-booking/internal/infra/sqlc/generated"
	"campsite-booking/tests/common/builder"
	readstoremock "campsite-booking/tests/mock/readstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var errDBConnectionLost = errors.New("database connection lost")

// =============================================================================
// Get Tests
// =============================================================================

func TestReadStore_Get(t *testing.T) {
	ctx := context.Background()
	const id = int64(3)

	testCases := []struct {
		name       string
		setupMock  func(*readstoremock.MockReservationReadQueries)
		expectKind infra.RepositoryErrorKind
	}{
		{
			name: "success: reservation found",
			setupMock: func(mock *readstoremock.MockReservationReadQueries) {
				mock.EXPECT().GetReservationByID(ctx, gomock.Any(), id).
					Return(builder.NewReservationBuilder().WithID(id).BuildInfra(), nil)
			},
		},
		{
			name: "error: reservation not found",
			setupMock: func(mock *readstoremock.MockReservationReadQueries) {
				mock.EXPECT().GetReservationByID(ctx, gomock.Any(), id).Return(sqlc.Reservations{}, pgx.ErrNoRows)
			},
			expectKind: infra.KindNotFound,
		},
		{
			name: "error: database error",
			setupMock: func(mock *readstoremock.MockReservationReadQueries) {
				mock.EXPECT().GetReservationByID(ctx, gomock.Any(), id).Return(sqlc.Reservations{}, errDBConnectionLost)
			},
			expectKind: infra.KindDBFailure,
		},
		{
			name: "error: active row without a range cannot be decoded",
			setupMock: func(mock *readstoremock.MockReservationReadQueries) {
				row := builder.NewReservationBuilder().WithID(id).BuildInfra()
				row.DateRange = pgtype.Range[pgtype.Date]{}
				mock.EXPECT().GetReservationByID(ctx, gomock.Any(), id).Return(row, nil)
			},
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
			store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})
			tc.setupMock(mockQueries)

			result, err := store.Get(ctx, id)

			if tc.expectKind != "" {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, err, err)
				assert.Nil(t, result, "result should be nil when error occurs")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, id, result.ID())
		})
	}
}

// =============================================================================
// FindOverlapping Tests
// =============================================================================

func TestReadStore_FindOverlapping(t *testing.T) {
	ctx := context.Background()
	window := daterange.Range{Start: daterange.Day(2030, time.January, 10), End: daterange.Day(2030, time.January, 20)}

	t.Run("passes inclusive bounds and returns rows of every status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})

		rows := []sqlc.Reservations{
			builder.NewReservationBuilder().WithID(1).BuildInfra(),
			builder.NewReservationBuilder().WithID(2).AsCancelled().BuildInfra(),
		}
		mockQueries.EXPECT().FindOverlappingReservations(ctx, gomock.Any(), sqlc.FindOverlappingReservationsParams{
			FromDate: pgtype.Date{Time: window.Start, Valid: true},
			ToDate:   pgtype.Date{Time: window.End, Valid: true},
		}).Return(rows, nil)

		result, err := store.FindOverlapping(ctx, window)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.True(t, result[0].Blocks())
		assert.True(t, result[1].IsCancelled())
	})

	t.Run("database error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := readstoremock.NewMockReservationReadQueries(ctrl)
		store := readstore.NewReservationReadStore(mockQueries, &mockDBTX{})
		mockQueries.EXPECT().FindOverlappingReservations(ctx, gomock.Any(), gomock.Any()).Return(nil, errDBConnectionLost)

		result, err := store.FindOverlapping(ctx, window)

		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.Nil(t, result)
	})
}

type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
