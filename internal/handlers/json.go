package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/lojf/registry/internal/services"
)

// Handlers serves the JSON API over one set of services.
type Handlers struct {
	svc *services.Services
	log *zap.Logger
}

func New(svc *services.Services, log *zap.Logger) *Handlers {
	return &Handlers{svc: svc, log: log}
}

// ID accepts a JSON number, a numeric string, or null/"" (zero).
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*id = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return errors.New("invalid id " + s)
	}
	*id = ID(n)
	return nil
}

// unresolvable never matches a row.
const unresolvable = -1

// LooseID is an ID that never fails decoding. Values that are not an
// integer decode as an id no row carries, so lookups reject them one by one
// instead of failing the whole body.
type LooseID int64

func (id *LooseID) UnmarshalJSON(b []byte) error {
	var strict ID
	if err := strict.UnmarshalJSON(b); err != nil {
		*id = unresolvable
		return nil
	}
	*id = LooseID(strict)
	return nil
}

// Number accepts a JSON number or a numeric string.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("invalid number " + s)
	}
	*n = Number(f)
	return nil
}

func (n *Number) float() *float64 {
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

func (id *ID) int64() *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

// decode reads a JSON body. An empty body decodes as an empty object.
func decode(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return &services.FieldError{Err: services.ErrInvalidValue, Field: "body"}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// queryID reads an optional id query parameter; blank is zero.
func queryID(r *http.Request, key string) (int64, error) {
	s := strings.TrimSpace(r.URL.Query().Get(key))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, &services.FieldError{Err: services.ErrInvalidValue, Field: key}
	}
	return n, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrInvalidValue),
		errors.Is(err, services.ErrInvalidReference),
		errors.Is(err, services.ErrNoValidLines):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidShift),
		errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAuthFailure):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail writes err as {"error": ...}. Store faults are logged and hidden.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		msg = "internal error"
	} else {
		h.log.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": msg})
}
