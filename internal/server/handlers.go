package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tilery/tilery/pkg/errors"
	"github.com/tilery/tilery/pkg/share"
)

// maxBoardBytes bounds uploaded payloads. A board of a few hundred tiles is
// well under a kilobyte, so this is generous.
const maxBoardBytes = 1 << 20

// createResponse is the body returned when a board is stored.
type createResponse struct {
	Code string `json:"code"`
	URL  string `json:"url"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBoardBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errors.New(errors.ErrCodeInvalidInput, "reading request body"))
		return
	}

	payload := strings.TrimSpace(string(body))
	if _, err := share.Decode(payload); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	code := share.NewCode()
	if err := s.cfg.Store.Save(r.Context(), code, []byte(payload)); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, createResponse{
		Code: code,
		URL:  strings.TrimSuffix(s.cfg.BaseURL, "/") + "/api/boards/" + code,
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := errors.ValidateBoardCode(code); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	data, found, err := s.cfg.Store.Load(r.Context(), code)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		s.writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeBoardNotFound, "no board with code %q", code))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write(data)
	io.WriteString(w, "\n")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if err := errors.ValidateBoardCode(code); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	if err := s.cfg.Store.Delete(r.Context(), code); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.cfg.Logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	s.writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}
