// Package backendtest serves canned backend responses over HTTP for tests.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Paintersrp/sift/internal/backend"
)

// Fixture maps queries to the responses the fake backend returns. Queries
// missing from a map get an empty response.
type Fixture struct {
	Suggestions map[string][]string
	Results     map[string]backend.SearchResponse
	Corrections map[string]string
	Classes     map[string]backend.Classification
	Evaluation  backend.Evaluation
}

// Request is what the fake backend observed for one call.
type Request struct {
	Path  string
	Query string
	Alpha *float64
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	fixture  Fixture
	requests []Request
	failures map[string]int
}

// New starts a server bound to t's lifetime.
func New(t testing.TB, fx Fixture) *Server {
	t.Helper()

	s := &Server{fixture: fx, failures: make(map[string]int)}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.failureMiddleware)
	r.Post(backend.PathSuggestions, s.handleSuggestions)
	r.Post(backend.PathSearch, s.handleSearch)
	r.Post(backend.PathCorrections, s.handleCorrections)
	r.Post(backend.PathPredictClass, s.handlePredictClass)
	r.Post(backend.PathEvaluate, s.handleEvaluate)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// Fail makes every later call to path answer with status.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = status
}

// Recover clears a failure installed with Fail.
func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// Requests returns the calls observed for path, oldest first.
func (s *Server) Requests(path string) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Request
	for _, req := range s.requests {
		if req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status, failing := s.failures[r.URL.Path]
		s.mu.Unlock()
		if failing {
			http.Error(w, "forced failure", status)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) record(path string, req backend.SearchRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, Request{Path: path, Query: req.Query, Alpha: req.Alpha})
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (backend.SearchRequest, bool) {
	var req backend.SearchRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return req, false
		}
	}
	s.record(r.URL.Path, req)
	return req, true
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	suggestions := s.fixture.Suggestions[req.Query]
	s.mu.Unlock()
	if suggestions == nil {
		suggestions = []string{}
	}
	respondJSON(w, backend.SuggestionsResponse{Suggestions: suggestions})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	resp, found := s.fixture.Results[req.Query]
	s.mu.Unlock()
	if !found {
		resp = backend.SearchResponse{Docs: []string{}, Ranks: []float64{}, Summaries: []string{}}
	}
	respondJSON(w, resp)
}

func (s *Server) handleCorrections(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	corrected := s.fixture.Corrections[req.Query]
	s.mu.Unlock()
	respondJSON(w, backend.CorrectionResponse{CorrectedQuery: corrected})
}

func (s *Server) handlePredictClass(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decode(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	class := s.fixture.Classes[req.Query]
	s.mu.Unlock()
	respondJSON(w, class)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.decode(w, r); !ok {
		return
	}
	s.mu.Lock()
	eval := s.fixture.Evaluation
	s.mu.Unlock()
	respondJSON(w, eval)
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
