package handler

import (
	"errors"
	"net/http"

	"github.com/codewithrabha/eventbooking/internal/domain"
	"github.com/codewithrabha/eventbooking/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{Errors: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: domain.ErrUnauthenticated.Error()})

	case errors.Is(err, domain.ErrEventNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: domain.ErrEventNotFound.Error()})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: domain.ErrProfileNotFound.Error()})
	case errors.Is(err, domain.ErrEventNotFoundOrUnauthorized):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: domain.ErrEventNotFoundOrUnauthorized.Error()})
	case errors.Is(err, domain.ErrBookingNotFoundOrUnauthorized):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: domain.ErrBookingNotFoundOrUnauthorized.Error()})

	case errors.Is(err, domain.ErrCapacityExceeded):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: domain.ErrCapacityExceeded.Error()})
	case errors.Is(err, domain.ErrEventHasActiveBookings):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: domain.ErrEventHasActiveBookings.Error()})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	default:
		h.logger.LogAttrs(c.Request.Context(), logger.ErrorLevel, "request failed",
			logger.String("path", c.Request.URL.Path),
			logger.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

func (h *Handler) validationFailed(c *ginext.Context, fields []domain.FieldError) {
	h.handleError(c, domain.NewValidationError(fields...))
}
