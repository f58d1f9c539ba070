// Package httpresponse writes the {success, message, data, warnings} envelope
// every REST route answers with.
package httpresponse

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"waste-service/internal/entities"
	"waste-service/internal/generated/dto"
	"waste-service/pkg/logger"
)

type handlerLogger interface {
	Error(msg string, fields ...logger.Field)
}

var (
	// ErrMalformedBody is reported when the request body is not valid JSON.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrUnauthenticated is reported when a route needs a caller but none was resolved.
	ErrUnauthenticated = errors.New("authentication required")
)

func Success(w http.ResponseWriter, log handlerLogger, status int, message string, data any, warnings []entities.SideEffectWarning) {
	envelope := dto.Envelope{
		Success: true,
		Message: message,
	}
	if data != nil {
		envelope.Data = &data
	}
	if len(warnings) > 0 {
		converted := make([]dto.Warning, 0, len(warnings))
		for _, w := range warnings {
			converted = append(converted, dto.Warning{
				Operation: w.Operation,
				EntityId:  w.EntityID,
				Message:   w.Message,
			})
		}
		envelope.Warnings = &converted
	}

	write(w, log, status, envelope)
}

// Error maps the error kind to a status code. Unknown errors are logged and
// hidden behind a generic message.
func Error(w http.ResponseWriter, log handlerLogger, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.NewField("error", err))
		message = "internal server error"
	}

	write(w, log, status, dto.Envelope{Success: false, Message: message})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrMalformedBody), errors.Is(err, entities.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, entities.ErrGenerationFailure):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Decode reads a JSON body into dst.
func Decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Join(ErrMalformedBody, err)
	}
	return nil
}

func write(w http.ResponseWriter, log handlerLogger, status int, envelope dto.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Error("encode JSON response", logger.NewField("error", err))
	}
}
