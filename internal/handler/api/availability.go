package api

import (
	"net/http"

	"campsite-booking/internal/domain/daterange"
	"campsite-booking/internal/domain/reservation"
	reqdto "campsite-booking/internal/handler/dto/request"
	resdto "campsite-booking/internal/handler/dto/response"
	"campsite-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q      queries.AvailabilityQueries
	policy *reservation.StayPolicy
}

func NewAvailabilityHandler(q queries.AvailabilityQueries, policy *reservation.StayPolicy) *AvailabilityHandler {
	return &AvailabilityHandler{q: q, policy: policy}
}

// @Summary Campsite availability
// @Description Free date ranges within [from, to]. Both dates must be in the future and from must precede to.
// @Tags availability
// @Produce json
// @Param from query string true "First day of the window (YYYY-MM-DD)"
// @Param to query string true "Last day of the window (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /api/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abort(c, errInvalidRequest, err, reqdto.FieldErrors(err))
		return
	}

	from, to, err := req.Window()
	if err != nil {
		abort(c, errInvalidRequest, err, err.Error())
		return
	}

	window, err := daterange.NewRange(from, to)
	if err == nil {
		err = h.policy.ValidateWindow(window)
	}
	if err != nil {
		abort(c, errInvalidRequest, err, err.Error())
		return
	}

	view, err := h.q.AvailabilityFor(c.Request.Context(), from, to)
	if err != nil {
		abortWithUseCaseError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
