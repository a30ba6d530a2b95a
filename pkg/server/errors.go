package server

import (
	"errors"
	"net/http"
	"time"

	dxerrors "github.com/NVIDIA/data-expectations/pkg/errors"
	"github.com/NVIDIA/data-expectations/pkg/serializer"
	"github.com/google/uuid"
)

// WriteError writes an ErrorResponse with the request's id.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code dxerrors.ErrorCode, message string, retryable bool, details map[string]any) {

	requestID, _ := r.Context().Value(contextKeyRequestID).(string)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}

// WriteErrorFromErr maps err to a response. Structured errors carry their own
// code, message and context; anything else is reported as INTERNAL with
// fallbackMessage. The error text always lands in details["error"].
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string, extraDetails map[string]any) {
	var se *dxerrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extraDetails)
		cause := se.Cause
		if cause == nil {
			cause = se
		}
		if details == nil {
			details = map[string]any{}
		}
		details["error"] = cause.Error()

		message := se.Message
		if message == "" {
			message = fallbackMessage
		}
		WriteError(w, r, HTTPStatusFromCode(se.Code), se.Code, message, retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extraDetails, nil)
	if details == nil {
		details = map[string]any{}
	}
	details["error"] = err.Error()
	WriteError(w, r, http.StatusInternalServerError, dxerrors.ErrCodeInternal, fallbackMessage,
		retryableFromCode(dxerrors.ErrCodeInternal), details)
}

// HTTPStatusFromCode maps an error code to its HTTP status.
func HTTPStatusFromCode(code dxerrors.ErrorCode) int {
	switch code {
	case dxerrors.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case dxerrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case dxerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case dxerrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case dxerrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case dxerrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case dxerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code dxerrors.ErrorCode) bool {
	switch code {
	case dxerrors.ErrCodeTimeout, dxerrors.ErrCodeUnavailable,
		dxerrors.ErrCodeRateLimitExceeded, dxerrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map with a's entries overwritten by b's, or nil
// when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
