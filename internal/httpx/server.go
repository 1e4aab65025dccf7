// Package httpx serves the search over HTTP and WebSocket.
//
// The WebSocket endpoint plays the part of an asynchronous reply port: every
// message names a port, the search runs on its own goroutine and the reply is
// posted back on the same connection with that port.
package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/CounterReversi/pkg/common"
	"github.com/ChizhovVadim/CounterReversi/pkg/engine"
	"github.com/ChizhovVadim/CounterReversi/pkg/wire"
)

var errBadRequest = errors.New("bad request")

type Limits struct {
	MaxSearchDepth  int
	MaxBatchSize    int
	MaxPendingPorts int
	AllowedOrigins  []string
}

type Server struct {
	engine   *engine.Engine
	logger   zerolog.Logger
	limits   Limits
	ports    chan struct{}
	upgrader websocket.Upgrader
}

func New(eng *engine.Engine, logger zerolog.Logger, limits Limits) *Server {
	var s = &Server{
		engine: eng,
		logger: logger,
		limits: limits,
		ports:  make(chan struct{}, common.Max(1, limits.MaxPendingPorts)),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) Routes() http.Handler {
	var r = chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Post("/api/search", s.handleSearch)
	r.Post("/api/search/batch", s.handleBatch)
	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/ws/search", s.handleWS)
	return r
}

type searchRequest struct {
	Squares     []int32 `json:"squares"`
	TurnDepth   int32   `json:"turn_depth"`
	Color       int32   `json:"color"`
	SearchDepth int32   `json:"search_depth"`
}

type searchResponse struct {
	Success  bool     `json:"success"`
	Result   []int32  `json:"result,omitempty"`
	Move     string   `json:"move,omitempty"`
	Score    int      `json:"score"`
	Nodes    int64    `json:"nodes"`
	MainLine []string `json:"main_line,omitempty"`
	Error    string   `json:"error,omitempty"`
}

type moveScoreDTO struct {
	Move  string `json:"move"`
	Score int    `json:"score"`
}

type analyzeResponse struct {
	Success bool           `json:"success"`
	Moves   []moveScoreDTO `json:"moves"`
	Error   string         `json:"error,omitempty"`
}

type batchRequest struct {
	Requests []searchRequest `json:"requests"`
}

type batchResponse struct {
	Success bool             `json:"success"`
	Results []searchResponse `json:"results,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, searchResponse{Error: err.Error()})
		return
	}
	var resp, err = s.search(req)
	if err != nil {
		writeJSON(w, statusOf(err), searchResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, analyzeResponse{Error: err.Error()})
		return
	}
	var params, err = s.params(req)
	if err != nil {
		writeJSON(w, statusOf(err), analyzeResponse{Error: err.Error()})
		return
	}
	scores, err := s.engine.Analyze(params)
	if err != nil {
		writeJSON(w, statusOf(err), analyzeResponse{Error: err.Error()})
		return
	}
	var moves = make([]moveScoreDTO, 0, len(scores))
	for _, ms := range scores {
		moves = append(moves, moveScoreDTO{Move: ms.Move.String(), Score: ms.Score})
	}
	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, Moves: moves})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, batchResponse{Error: err.Error()})
		return
	}
	if len(req.Requests) == 0 || len(req.Requests) > s.limits.MaxBatchSize {
		var err = fmt.Errorf("%w: batch of %v, limit %v", errBadRequest, len(req.Requests), s.limits.MaxBatchSize)
		writeJSON(w, http.StatusBadRequest, batchResponse{Error: err.Error()})
		return
	}
	var params = make([]common.SearchParams, len(req.Requests))
	for i := range req.Requests {
		var p, err = s.params(req.Requests[i])
		if err != nil {
			err = fmt.Errorf("request %v: %w", i, err)
			writeJSON(w, statusOf(err), batchResponse{Error: err.Error()})
			return
		}
		params[i] = p
	}
	var results, err = s.engine.SearchBatch(r.Context(), params)
	if err != nil {
		writeJSON(w, statusOf(err), batchResponse{Error: err.Error()})
		return
	}
	var resp = batchResponse{Success: true, Results: make([]searchResponse, len(results))}
	for i, result := range results {
		resp.Results[i] = newSearchResponse(params[i].Side, result)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) params(req searchRequest) (common.SearchParams, error) {
	if int(req.SearchDepth) > s.limits.MaxSearchDepth {
		return common.SearchParams{}, fmt.Errorf("%w: %v, limit %v", common.ErrInvalidDepth, req.SearchDepth, s.limits.MaxSearchDepth)
	}
	return wire.DecodeRequest(req.Squares, req.TurnDepth, req.Color, req.SearchDepth)
}

func (s *Server) search(req searchRequest) (searchResponse, error) {
	var params, err = s.params(req)
	if err != nil {
		return searchResponse{}, err
	}
	result, err := s.engine.Search(params)
	if err != nil {
		return searchResponse{}, err
	}
	return newSearchResponse(params.Side, result), nil
}

func newSearchResponse(side common.Color, result common.SearchResult) searchResponse {
	var mainLine = make([]string, len(result.MainLine))
	for i, move := range result.MainLine {
		mainLine[i] = move.String()
	}
	return searchResponse{
		Success:  true,
		Result:   wire.EncodeResult(wire.NewResult(side, result)),
		Move:     result.Move.String(),
		Score:    result.Score,
		Nodes:    result.Nodes,
		MainLine: mainLine,
	}
}

// statusOf maps caller mistakes to 400. A generated move that fails to apply
// is an engine fault and gives 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, common.ErrInvalidMove):
		return http.StatusInternalServerError
	case errors.Is(err, common.ErrInvalidBoard),
		errors.Is(err, common.ErrInvalidColor),
		errors.Is(err, common.ErrInvalidDepth),
		errors.Is(err, common.ErrOutOfRange),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func decodeJSON(r *http.Request, v any) error {
	var dec = json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ww = middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		var start = time.Now()
		defer func() {
			s.logger.Debug().
				Str("request-id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		}()
		next.ServeHTTP(ww, r)
	})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	if len(s.limits.AllowedOrigins) == 0 {
		return true
	}
	var origin = r.Header.Get("Origin")
	for _, allowed := range s.limits.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}
