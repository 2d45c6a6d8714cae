package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"pokedex-catalog/service"
)

// statusFor maps a service error to an HTTP status code
func statusFor(err error) int {
	var (
		notFound  *service.NotFoundError
		network   *service.NetworkError
		malformed *service.MalformedChainError
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidViewState):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSuperseded):
		return http.StatusConflict
	case errors.As(err, &malformed), errors.As(err, &network):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs a failed request and writes the mapped status
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	logger.Warn(fmt.Sprintf("❌ %s failed", op), zap.Int("status", status), zap.Error(err))
	http.Error(w, err.Error(), status)
}

// writeJSON encodes v as the response body
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ Error encoding response", zap.Error(err))
	}
}
