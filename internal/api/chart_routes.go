package api

import (
	"errors"
	"net/http"
	"strconv"

	"PriceChart/internal/chart"
	"PriceChart/internal/model"
	"PriceChart/internal/recorder"
	"PriceChart/internal/series"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

const maxTicks = 24

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	syms, err := s.store.Symbols(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list symbols")
		writeError(w, http.StatusInternalServerError, "failed to list symbols")
		return
	}
	if syms == nil {
		syms = []string{}
	}
	writeJSON(w, http.StatusOK, syms)
}

func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	view, ok := s.buildView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleChartHTML(w http.ResponseWriter, r *http.Request) {
	view, ok := s.buildView(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chart.RenderHTML(w, view); err != nil {
		log.Error().Err(err).Str("symbol", view.Symbol).Msg("failed to render chart")
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.collector == nil {
		writeError(w, http.StatusNotImplemented, "refresh is not configured")
		return
	}
	symbol := mux.Vars(r)["symbol"]
	n, err := s.collector.Collect(r.Context(), symbol)
	if err != nil {
		log.Error().Err(err).Str("symbol", symbol).Msg("on-demand refresh failed")
		writeError(w, http.StatusBadGateway, "failed to refresh price history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "observations": n})
}

// buildView parses the request and writes the error response itself when it
// fails.
func (s *Server) buildView(w http.ResponseWriter, r *http.Request) (*chart.View, bool) {
	symbol := mux.Vars(r)["symbol"]
	req, err := s.parseRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	view, err := s.charts.Build(r.Context(), symbol, req)
	switch {
	case err == nil:
		return view, true
	case errors.Is(err, recorder.ErrUnknownSymbol), errors.Is(err, series.ErrEmptyInput):
		writeError(w, http.StatusNotFound, "no price history for "+symbol)
	case errors.Is(err, series.ErrInvalidTickCount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("symbol", symbol).Msg("failed to build chart")
		writeError(w, http.StatusInternalServerError, "failed to build chart")
	}
	return nil, false
}

func (s *Server) parseRequest(r *http.Request) (chart.Request, error) {
	q := r.URL.Query()
	req := chart.Request{Window: s.charts.Defaults().Window}

	if v := q.Get("window"); v != "" {
		w, err := series.ParseWindow(v)
		if err != nil {
			return req, err
		}
		req.Window = w
	}
	if v := q.Get("ticks"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxTicks {
			return req, errors.New("ticks must be an integer between 1 and 24")
		}
		req.Ticks = n
	}
	if v := q.Get("ma"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return req, errors.New("ma must be a positive integer")
		}
		req.MovingAverage = n
	}

	from, to := q.Get("from"), q.Get("to")
	if (from == "") != (to == "") {
		return req, errors.New("from and to must be given together")
	}
	if from != "" {
		f, err := model.ParseDate(from)
		if err != nil {
			return req, errors.New("invalid from date, expected YYYY-MM-DD")
		}
		t, err := model.ParseDate(to)
		if err != nil {
			return req, errors.New("invalid to date, expected YYYY-MM-DD")
		}
		req.Zoom = &model.DateRange{From: f, To: t}
	}
	return req, nil
}
