package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/tether/pkg/buildinfo"
	"github.com/matzehuels/tether/pkg/errors"
	"github.com/matzehuels/tether/pkg/geom"
	"github.com/matzehuels/tether/pkg/pipeline"
	"github.com/matzehuels/tether/pkg/plug"
	"github.com/matzehuels/tether/pkg/scene"
)

// PlugRequest is the body of POST /v1/plugs.
type PlugRequest struct {
	Kind string  `json:"kind"`
	Size float64 `json:"size,omitempty"`
}

// PlugResponse is the reply of POST /v1/plugs.
type PlugResponse struct {
	Kind plug.Kind `json:"kind"`
	Size float64   `json:"size"`
	D    string    `json:"d"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	var req pipeline.Request
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	geo, hit, err := s.runner.Compute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, geo)
}

func (s *Server) handlePlug(w http.ResponseWriter, r *http.Request) {
	var req PlugRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	kind := plug.Normalize(req.Kind)
	size := req.Size
	if size == 0 {
		size = plug.DefaultSize
	}
	d, err := s.runner.Plug(r.Context(), kind, size)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PlugResponse{Kind: kind, Size: size, D: d})
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	sc, err := scene.Parse(body, scene.FormatJSON)
	if err == nil {
		err = sc.Validate()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.ComputeScene(r.Context(), sc, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePutElement(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	if err := errors.ValidateID(handle); err != nil {
		writeError(w, err)
		return
	}
	var rect geom.Rect
	if err := decode(w, r, &rect); err != nil {
		writeError(w, err)
		return
	}
	if err := s.store.Put(r.Context(), handle, rect); err != nil {
		writeError(w, err)
		return
	}
	n, err := s.invalidate(r, handle)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"handle": handle, "updated": n})
}

func (s *Server) handleDeleteElement(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	if err := s.store.Delete(r.Context(), handle); err != nil {
		writeError(w, err)
		return
	}
	if _, err := s.invalidate(r, handle); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddLink(w http.ResponseWriter, r *http.Request) {
	if !s.running(w) {
		return
	}
	var link scene.Link
	if err := decode(w, r, &link); err != nil {
		writeError(w, err)
		return
	}
	id, err := s.manager.Add(r.Context(), link, nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetLink(w http.ResponseWriter, r *http.Request) {
	if !s.running(w) {
		return
	}
	geo, err := s.manager.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, geo)
}

func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	if !s.running(w) {
		return
	}
	if err := s.manager.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) invalidate(r *http.Request, handle string) (int, error) {
	if !s.started.Load() {
		return 0, nil
	}
	return s.manager.Invalidate(r.Context(), handle)
}

func (s *Server) running(w http.ResponseWriter) bool {
	if s.started.Load() {
		return true
	}
	writeError(w, errors.New(errors.ErrCodeUnsupported, "link registry is not running"))
	return false
}

// =============================================================================
// Encoding
// =============================================================================

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode body: %v", err)
	}
	return nil
}

// writeJSON encodes v before committing the status, so that a value that
// cannot be encoded becomes a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(ErrorResponse{
			Code:    errors.ErrCodeInternal,
			Message: "encode response: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCodeOr(err, errors.ErrCodeInternal)
	writeJSON(w, statusFor(code), ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene, errors.ErrCodeInvalidKind:
		return http.StatusBadRequest
	case errors.ErrCodeNotReady:
		return http.StatusConflict
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
