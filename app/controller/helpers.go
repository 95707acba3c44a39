package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"mugix-storefront/auth"
	"mugix-storefront/imageset"
	"mugix-storefront/order"
	"mugix-storefront/repository"
	"mugix-storefront/service"
	"mugix-storefront/utils"
)

const maxJSONBody = 1 << 20

// normalizer is implemented by request bodies that clean up their fields
// before validation
type normalizer interface {
	Normalize()
}

// decodeAndValidate reads a JSON body into dst, normalizes it and runs the
// struct validator. It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		utils.WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return false
	}
	if n, ok := dst.(normalizer); ok {
		n.Normalize()
	}
	if err := utils.Validate.Struct(dst); err != nil {
		utils.WriteValidationError(w, err)
		return false
	}
	return true
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrInvalidReference),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrUnknownColor),
		errors.Is(err, order.ErrNotSingleMode),
		errors.Is(err, order.ErrNotMultiMode),
		errors.Is(err, order.ErrAllocationFull),
		errors.Is(err, order.ErrTooManyColors),
		errors.Is(err, imageset.ErrUnsupportedType),
		errors.Is(err, imageset.ErrTooLarge),
		errors.Is(err, imageset.ErrIndexOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err with its mapped status. notFound replaces
// the message of ErrNotFound; 500s are logged and their detail hidden.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error, notFound string) {
	status := statusFor(err)
	switch status {
	case http.StatusNotFound:
		utils.WriteError(w, status, notFound)
	case http.StatusInternalServerError:
		logger.Error(op+" failed", zap.Error(err))
		utils.WriteError(w, status, "Internal server error")
	default:
		utils.WriteError(w, status, err.Error())
	}
}

// writeCacheableJSON writes v with a weak ETag and answers 304 when the
// client already holds the same representation.
func writeCacheableJSON(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Failed to encode response")
		return
	}

	etag := fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(buf.Bytes()))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

type messageResponse struct {
	Message string `json:"message"`
}
