package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	kerrors "github.com/keggrest/kegg/pkg/errors"
	"github.com/keggrest/kegg/pkg/integrations"
)

// errorResponse is the body of every non-2xx JSON response.
type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("write response", "request_id", requestIDFrom(r.Context()), "error", err)
	}
}

func (s *Server) writeText(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// clientError replies with the standard text for status.
func (s *Server) clientError(w http.ResponseWriter, r *http.Request, status int) {
	s.writeJSON(w, r, status, errorResponse{
		Error:     http.StatusText(status),
		Message:   http.StatusText(status),
		RequestID: requestIDFrom(r.Context()),
	})
}

// fail maps err to a status code and writes it as JSON. Server side
// failures are logged; invalid requests are not.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	id := requestIDFrom(r.Context())
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "request_id", id, "path", r.URL.Path, "status", status, "error", err)
	}
	s.writeJSON(w, r, status, errorResponse{
		Error:     kerrors.UserMessage(err),
		Code:      string(kerrors.GetCode(err)),
		Message:   http.StatusText(status),
		RequestID: id,
	})
}

// statusFor picks the HTTP status reported for an operation error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, integrations.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	switch kerrors.GetCode(err) {
	case kerrors.ErrCodeInvalidInput, kerrors.ErrCodeInvalidDatabase,
		kerrors.ErrCodeInvalidEntry, kerrors.ErrCodeInvalidOption,
		kerrors.ErrCodeUnsupported:
		return http.StatusBadRequest
	case kerrors.ErrCodeNotFound:
		return http.StatusNotFound
	case kerrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case kerrors.ErrCodeTransport, kerrors.ErrCodeFormat, kerrors.ErrCodeShape:
		return http.StatusBadGateway
	}
	if errors.Is(err, integrations.ErrNetwork) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// param returns the unescaped URL parameter name. Entry identifiers contain
// ':' and '+', which clients may percent-encode. chi matches on RawPath when
// it is set, so only then are values still escaped.
func param(r *http.Request, name string) (string, error) {
	raw := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return raw, nil
	}
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "malformed %s %q", name, raw)
	}
	return v, nil
}

// params returns the unescaped values of several URL parameters.
func params(r *http.Request, names ...string) ([]string, error) {
	vals := make([]string, len(names))
	for i, name := range names {
		v, err := param(r, name)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return vals, nil
}
