package api

import (
	"net/http"

	"campsite-booking/internal/handler/httperr"
	"campsite-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type apiError struct {
	status int
	code   string
	msg    string
}

var (
	errInvalidRequest   = apiError{http.StatusBadRequest, httperr.CodeInvalidRequest, "Invalid request"}
	errBadID            = apiError{http.StatusBadRequest, httperr.CodeInvalidRequest, "Invalid reservation ID"}
	errNotFound         = apiError{http.StatusNotFound, httperr.CodeNotFound, "Reservation not found"}
	errDateUnavailable  = apiError{http.StatusConflict, httperr.CodeDateUnavailable, "Requested date is not available"}
	errAlreadyCancelled = apiError{http.StatusConflict, httperr.CodeAlreadyCancelled, "Reservation is already cancelled"}
	errModified         = apiError{http.StatusConflict, httperr.CodeConcurrentlyChanged, "Reservation is already modified, try again later"}
	errInternal         = apiError{http.StatusInternalServerError, httperr.CodeInternal, "Internal server error"}
)

func abort(c *gin.Context, e apiError, cause error, detail any) {
	httperr.AbortWithError(c, cause, httperr.NewResponse(e.status, e.code, e.msg, detail))
}

// abortWithUseCaseError maps business errors onto HTTP statuses. Anything
// unrecognized is an internal fault and its cause is never echoed.
func abortWithUseCaseError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrReservationNotFound):
		abort(c, errNotFound, err, nil)
	case errs.Is(err, errs.ErrDateUnavailable):
		abort(c, errDateUnavailable, err, nil)
	case errs.Is(err, errs.ErrInvalidState):
		abort(c, errAlreadyCancelled, err, nil)
	case errs.Is(err, errs.ErrVersionConflict):
		abort(c, errModified, err, nil)
	case errs.Is(err, errs.ErrDomainValidation), errs.Is(err, errs.ErrInvalidWindow):
		abort(c, errInvalidRequest, err, err.Error())
	default:
		abort(c, errInternal, err, nil)
	}
}
