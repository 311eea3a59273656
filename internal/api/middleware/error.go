package middleware

import (
	"errors"
	"net/http"

	"unit-commitment/internal/api/models"
	"unit-commitment/internal/model"

	"github.com/gin-gonic/gin"
)

// ErrorHandler maps domain errors registered via c.Error into HTTP
// responses, and recovers panics as 500s. Handlers call c.Error(err) and
// return rather than writing the response themselves, so this middleware
// must run after the handler (gin runs deferred middleware logic after
// c.Next returns).
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				msg := "an unexpected error occurred"
				if err, ok := r.(error); ok {
					msg = err.Error()
				} else if s, ok := r.(string); ok {
					msg = s
				}
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error: models.ErrorDetail{Code: "INTERNAL_ERROR", Message: msg},
				})
				c.Abort()
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, code := classify(err)
		c.JSON(status, models.ErrorResponse{Error: models.ErrorDetail{Code: code, Message: err.Error()}})
	}
}

// classify maps a domain error to an HTTP status and machine-readable
// code, following the failure semantics of the optimizer: malformed
// input is a client error, infeasible capacity is a well-formed request
// the fleet cannot satisfy, and a solver or auditor failure is ours.
func classify(err error) (int, string) {
	var invalidUnit *model.InvalidUnitError
	var invalidDemand *model.InvalidDemandError
	var inputShape *model.InputShapeError
	var infeasibleCapacity *model.InfeasibleCapacityError
	var solverErr *model.SolverError
	var constraintViolation *model.ConstraintViolation

	switch {
	case errors.As(err, &invalidUnit):
		return http.StatusBadRequest, "INVALID_UNIT"
	case errors.As(err, &invalidDemand):
		return http.StatusBadRequest, "INVALID_DEMAND"
	case errors.As(err, &inputShape):
		return http.StatusBadRequest, "INVALID_INPUT_SHAPE"
	case errors.As(err, &infeasibleCapacity):
		return http.StatusUnprocessableEntity, "INFEASIBLE_CAPACITY"
	case errors.As(err, &solverErr):
		return http.StatusInternalServerError, "SOLVER_ERROR"
	case errors.As(err, &constraintViolation):
		return http.StatusInternalServerError, "CONSTRAINT_VIOLATION"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
