package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message,omitempty"`
	TraceID string            `json:"trace_id,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Messages shown to the user for service errors.
const (
	MsgRemoteService       = "Failed to generate your itinerary. Please check your API key and try again."
	MsgStepOutOfOrder      = "This step is not available in the current wizard state"
	MsgItineraryMissing    = "No itinerary is available for download"
	MsgItineraryNotFound   = "Itinerary not found"
	MsgDocumentEncoding    = "The itinerary contains characters that cannot be written to the PDF"
	MsgInternalServerError = "Internal server error"
)

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: c.GetString("trace_id"),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// RespondValidation reports field level validation errors. data carries the
// unchanged wizard state.
func RespondValidation(c *gin.Context, fieldErrors map[string]string, data interface{}) {
	c.JSON(http.StatusUnprocessableEntity, APIResponse{
		Status:  "error",
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		TraceID: c.GetString("trace_id"),
		Data:    data,
		Errors:  fieldErrors,
	})
}

// StatusFor maps a service error to its HTTP status and user facing message.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest, "Invalid request format"
	case errors.Is(err, ErrStepOutOfOrder):
		return http.StatusConflict, MsgStepOutOfOrder
	case errors.Is(err, ErrRemoteService):
		return http.StatusBadGateway, MsgRemoteService
	case errors.Is(err, ErrItineraryUnavailable):
		return http.StatusConflict, MsgItineraryMissing
	case errors.Is(err, ErrItineraryNotFound):
		return http.StatusNotFound, MsgItineraryNotFound
	case errors.Is(err, ErrDocumentEncoding):
		return http.StatusUnprocessableEntity, MsgDocumentEncoding
	default:
		return http.StatusInternalServerError, MsgInternalServerError
	}
}

func HandleServiceError(c *gin.Context, err error) {
	code, message := StatusFor(err)
	if code >= http.StatusInternalServerError {
		zap.L().Error("service error",
			zap.Error(err),
			zap.Int("status", code),
			zap.String("trace_id", c.GetString("trace_id")),
			zap.String("path", c.FullPath()),
		)
	}
	RespondError(c, code, message)
}
