package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	reqdto "campsite-booking/internal/handler/dto/request"
	resdto "campsite-booking/internal/handler/dto/response"
	"campsite-booking/internal/usecase/commands"
	"campsite-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("reservation id must be a positive integer")

type ReservationHandler struct {
	cmds   commands.ReservationCommands
	q      queries.ReservationQueries
	policy *reservation.StayPolicy
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries, policy *reservation.StayPolicy) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q, policy: policy}
}

// @Summary Create reservation
// @Description Reserve a contiguous span of days
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errInvalidRequest, err, reqdto.FieldErrors(err))
		return
	}

	in, err := req.ToInput()
	if err != nil {
		abort(c, errInvalidRequest, err, err.Error())
		return
	}
	if err := h.validateStay(in.Arrival, in.Departure); err != nil {
		abort(c, errInvalidRequest, err, err.Error())
		return
	}

	view, err := h.cmds.CreateReservation(c.Request.Context(), in)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}

	c.Header("Location", "/api/reservations/"+strconv.FormatInt(view.ID, 10))
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Update reservation
// @Description Partial update; arrivalDate and departureDate must be sent together
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "Reservation ID"
// @Param request body reqdto.UpdateReservationRequest true "Fields to change"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id} [patch]
func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, errInvalidRequest, err, reqdto.FieldErrors(err))
		return
	}

	in, err := req.ToInput()
	if err != nil {
		abort(c, errInvalidRequest, err, err.Error())
		return
	}
	if in.Arrival != nil {
		if err := h.validateStay(*in.Arrival, *in.Departure); err != nil {
			abort(c, errInvalidRequest, err, err.Error())
			return
		}
	}

	view, err := h.cmds.UpdateReservation(c.Request.Context(), id, in)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Description Cancels the reservation and releases its dates. The record is kept.
// @Tags reservations
// @Produce json
// @Param id path int true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/reservations/{id} [delete]
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	id, ok := reservationID(c)
	if !ok {
		return
	}

	view, err := h.cmds.CancelReservation(c.Request.Context(), id)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

func (h *ReservationHandler) validateStay(arrival, departure time.Time) error {
	stay, err := daterange.NewStay(arrival, departure)
	if err != nil {
		return err
	}
	return h.policy.ValidateStay(stay)
}

func reservationID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errInvalidID
		}
		abort(c, errBadID, err, nil)
		return 0, false
	}
	return id, true
}
