// Package server exposes a task.Service over HTTP and provides the client the
// CLI uses to talk to it.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/amonks/taskboard/task"
)

// APIPrefix is the path prefix of every API route.
const APIPrefix = "/api/v1"

// DefaultAllowedOrigin is the browser origin allowed when none is configured.
const DefaultAllowedOrigin = "http://localhost:8080"

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	// Logger receives startup, shutdown and request failure messages.
	// Defaults to stderr with a "taskboard: " prefix.
	Logger *log.Logger

	// AllowedOrigins lists the origins that receive CORS headers. A "*" entry
	// allows any origin. Defaults to DefaultAllowedOrigin.
	AllowedOrigins []string
}

// Server handles task API requests.
type Server struct {
	service        *task.Service
	logger         *log.Logger
	allowedOrigins []string
}

// New creates a server backed by service.
func New(service *task.Service, opts Options) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("task service is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "taskboard: ", log.LstdFlags)
	}
	origins := opts.AllowedOrigins
	if origins == nil {
		origins = []string{DefaultAllowedOrigin}
	}
	return &Server{
		service:        service,
		logger:         logger,
		allowedOrigins: origins,
	}, nil
}

// Handler returns the HTTP handler for the task API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+APIPrefix+"/todos", s.handleList)
	mux.HandleFunc("POST "+APIPrefix+"/todos", s.handleCreate)
	mux.HandleFunc("POST "+APIPrefix+"/todoslist", s.handleCreateBatch)
	mux.HandleFunc("GET "+APIPrefix+"/todos/{id}", s.handleGet)
	mux.HandleFunc("PUT "+APIPrefix+"/todos/{id}", s.handleUpdate)
	mux.HandleFunc("POST "+APIPrefix+"/todos/{id}/done", s.handleDone)
	mux.HandleFunc("PUT "+APIPrefix+"/todos/{id}/undone", s.handleUndone)
	mux.HandleFunc("DELETE "+APIPrefix+"/todos/{id}/delete", s.handleDelete)
	mux.HandleFunc("GET "+APIPrefix+"/avg-time", s.handleAverages)
	mux.HandleFunc("GET "+APIPrefix+"/health", s.handleHealth)
	return s.recoverHandler(s.corsHandler(mux))
}

// Serve runs the server on addr until ctx is done or an interrupt arrives,
// then drains in-flight requests.
func (s *Server) Serve(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ErrorLog:          s.logger,
		ReadHeaderTimeout: 10 * time.Second,
	}

	listenErrs := make(chan error, 1)
	go func() {
		listenErrs <- server.ListenAndServe()
	}()
	s.logf("listening on %s", addr)

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	select {
	case err := <-listenErrs:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logf("server stopped: %v", err)
			return err
		}
		return nil
	case <-interrupts:
		s.logf("interrupt received, shutting down")
	case <-ctx.Done():
		s.logf("context done, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	shutdownErr := server.Shutdown(shutdownCtx)
	cancel()
	listenErr := <-listenErrs
	if errors.Is(listenErr, http.ErrServerClosed) {
		listenErr = nil
	}
	return errors.Join(shutdownErr, listenErr)
}

func (s *Server) recoverHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writer := &responseTracker{ResponseWriter: w}
		defer func() {
			if recovered := recover(); recovered != nil {
				s.logf("panic handling request %s %s: %v\n%s", r.Method, r.URL.Path, recovered, debug.Stack())
				if writer.wroteHeader {
					return
				}
				writeJSON(writer, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(writer, r)
	})
}

func (s *Server) corsHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			header := w.Header()
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			header.Set("Access-Control-Allow-Headers", "Content-Type")
			header.Set("Access-Control-Expose-Headers", "Location")
			header.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	return slices.ContainsFunc(s.allowedOrigins, func(allowed string) bool {
		return allowed == "*" || strings.EqualFold(allowed, origin)
	})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrInvalid), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dest any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("%w: decode request body: %v", errBadRequest, err)
	}
	if decoder.More() {
		return fmt.Errorf("%w: unexpected extra JSON data", errBadRequest)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	s.logRequestError(r, status, err)
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (s *Server) logRequestError(r *http.Request, status int, err error) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf("request %s %s failed (%d): %v", r.Method, r.URL.Path, status, err)
}

func (s *Server) logf(format string, args ...any) {
	if s == nil || s.logger == nil {
		return
	}
	s.logger.Printf(format, args...)
}

type responseTracker struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *responseTracker) WriteHeader(status int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseTracker) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	return w.ResponseWriter.Write(data)
}
