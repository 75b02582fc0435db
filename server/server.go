// Package server exposes the marquee over HTTP.
//
// POST /display accepts a JSON body with the text to scroll and optional
// colors, replacing whatever is currently on the panel. GET / serves a
// small submission page for phones on the same network.
package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"image/color"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

//go:embed index.html
var indexPage []byte

// Scroller starts and stops marquee sessions. Submit returns the id of
// the session it started.
type Scroller interface {
	Submit(text string, fg, bg color.Color) string
	Stop()
}

// Server routes HTTP requests to a Scroller.
type Server struct {
	scroller Scroller
	log      *slog.Logger
	router   chi.Router
}

// New builds a Server around scroller. A nil log falls back to
// slog.Default.
func New(scroller Scroller, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{scroller: scroller, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/display", s.handleDisplay)
	r.Post("/stop", s.handleStop)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type displayRequest struct {
	Text            string `json:"text"`
	TextColor       string `json:"textColor"`
	BackgroundColor string `json:"backgroundColor"`
}

type displayResponse struct {
	Status    string `json:"status"`
	Scrolling bool   `json:"scrolling"`
	Session   string `json:"session,omitempty"`
}

func (s *Server) handleDisplay(w http.ResponseWriter, r *http.Request) {
	var req displayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	fg, err := parseColor(req.TextColor, color.White)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid textColor: %v", err))
		return
	}
	bg, err := parseColor(req.BackgroundColor, color.Black)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid backgroundColor: %v", err))
		return
	}

	id := s.scroller.Submit(req.Text, fg, bg)
	s.log.Info("display request", "session", id, "chars", len(req.Text))
	s.writeJSON(w, http.StatusOK, displayResponse{Status: "success", Scrolling: true, Session: id})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	s.scroller.Stop()
	s.log.Info("stop request")
	s.writeJSON(w, http.StatusOK, displayResponse{Status: "success", Scrolling: false})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexPage)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"status": "error", "message": msg})
}

// parseColor parses a "#rrggbb" value, returning def for the empty
// string.
func parseColor(v string, def color.Color) (color.Color, error) {
	if v == "" {
		return def, nil
	}
	if len(v) != 7 || v[0] != '#' {
		return nil, fmt.Errorf("%q is not of the form #rrggbb", v)
	}
	n, err := strconv.ParseUint(v[1:], 16, 32)
	if err != nil {
		return nil, fmt.Errorf("%q is not of the form #rrggbb", v)
	}
	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}, nil
}
