package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"BuyOrWait/internal/assistant"
	"BuyOrWait/internal/chart"
	"BuyOrWait/internal/collector"
	"BuyOrWait/internal/logger"
	"BuyOrWait/internal/model"
	"BuyOrWait/internal/strategy"

	json "github.com/goccy/go-json"
)

// InsufficientDataMessage is the user-facing text for ErrInsufficientData.
const InsufficientDataMessage = "Not enough historical data."

type selectionQuery struct {
	State     string `json:"state" validate:"required"`
	Commodity string `json:"commodity" validate:"required"`
}

type askRequest struct {
	State     string `json:"state" validate:"required"`
	Commodity string `json:"commodity" validate:"required"`
	Question  string `json:"question" validate:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Warnf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps pipeline errors to HTTP statuses and user-facing messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, collector.ErrInsufficientData):
		return http.StatusUnprocessableEntity, InsufficientDataMessage
	case errors.Is(err, collector.ErrUnknownSelection):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, strategy.ErrZeroCurrentPrice), errors.Is(err, strategy.ErrNonFinitePrice):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func (s *Server) selection(w http.ResponseWriter, r *http.Request) (*model.Analysis, bool) {
	q := selectionQuery{
		State:     strings.TrimSpace(r.URL.Query().Get("state")),
		Commodity: strings.TrimSpace(r.URL.Query().Get("commodity")),
	}
	if err := s.validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, "state and commodity are required")
		return nil, false
	}
	return s.analyze(w, q.State, q.Commodity)
}

func (s *Server) analyze(w http.ResponseWriter, state, commodity string) (*model.Analysis, bool) {
	a, err := s.Advisor.Analyze(state, commodity)
	if err != nil {
		status, msg := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Log.Errorf("analyze %s / %s: %v", state, commodity, err)
		}
		writeError(w, status, msg)
		return nil, false
	}
	return a, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"source":       s.Table.Source(),
		"observations": s.Table.Len(),
	})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"states": s.Table.Regions()})
}

func (s *Server) handleCommodities(w http.ResponseWriter, r *http.Request) {
	state := strings.TrimSpace(r.URL.Query().Get("state"))
	if err := s.validate.Var(state, "required"); err != nil {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state":       state,
		"commodities": s.Table.Commodities(state),
	})
}

func (s *Server) handleQuickQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"questions": assistant.QuickQuestions})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	a, ok := s.selection(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newAnalysisView(a))
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if err := s.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "state, commodity and question are required")
		return
	}
	a, ok := s.analyze(w, req.State, req.Commodity)
	if !ok {
		return
	}
	answer := s.Responder.Reply(req.Question, assistant.Context{
		Recommendation: a.Recommendation,
		Region:         a.Region,
		Commodity:      a.Commodity,
	})
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	a, ok := s.selection(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := chart.RenderTrend(&buf, a); err != nil {
		logger.Log.Errorf("render chart: %v", err)
		writeError(w, http.StatusInternalServerError, "render chart failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Log.Debugf("write chart: %v", err)
	}
}
