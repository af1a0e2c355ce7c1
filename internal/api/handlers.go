package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/eda-game-tester/internal/batch"
	"github.com/MJE43/eda-game-tester/internal/game"
	"github.com/MJE43/eda-game-tester/internal/report"
	"github.com/MJE43/eda-game-tester/internal/runner"
	"github.com/MJE43/eda-game-tester/internal/runstore"
	"github.com/MJE43/eda-game-tester/internal/version"
)

// handleHealth reports liveness and whether the configured game binary
// looks runnable.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "healthy",
		TesterVersion: version.Version,
		Uptime:        time.Since(s.startTime).String(),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	if err := checkExecutable(s.cfg.GameBinary); err != nil {
		resp.Status = "degraded"
		resp.Message = fmt.Sprintf("game binary: %v", err)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleCreateRun validates the request, plays the batch synchronously and
// stores the outcome in the registry.
func (s *Server) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body",
			map[string]interface{}{"error": err.Error()})
		return
	}
	if req.Instances == 0 {
		req.Instances = 100
	}
	if err := ValidateRunRequest(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	settings, err := s.loadSettings(&req)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	var players [4]game.PlayerName
	for i, name := range req.Players {
		players[i], err = game.NewPlayerName(name)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
			return
		}
	}
	cfg, err := game.NewConfig(players, req.Seed, req.Instances, settings, s.cfg.GameBinary)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, ErrTypeValidation, err.Error(), nil)
		return
	}

	ctx := r.Context()
	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	requestID := middleware.GetReqID(r.Context())
	s.logger.Printf("run_request request_id=%s seed=%d instances=%d workers=%d game=%s",
		requestID, req.Seed, req.Instances, req.Workers, s.cfg.GameBinary)

	pool := batch.New(runner.New(cfg), req.Workers)
	start := time.Now()
	res, err := pool.Run(ctx, cfg.Range)
	if err != nil {
		s.logger.Printf("run_failed request_id=%s error=%q", requestID, err)
		status, errType := http.StatusInternalServerError, ErrTypeRunFailed
		if errors.Is(err, context.DeadlineExceeded) {
			status, errType = http.StatusRequestTimeout, ErrTypeTimeout
		}
		s.writeError(w, status, errType, err.Error(), map[string]interface{}{
			"seed":      req.Seed,
			"instances": req.Instances,
		})
		return
	}
	duration := time.Since(start)

	id := s.store.Insert(&runstore.Run{
		Players:    cfg.DisplayNames(),
		Seed:       req.Seed,
		Instances:  req.Instances,
		Workers:    pool.Workers(),
		DurationMs: duration.Milliseconds(),
		Results:    res,
	})

	s.logger.Printf("run_completed request_id=%s id=%s duration_ms=%d crashed=%d",
		requestID, id, duration.Milliseconds(), len(res.FailedSeeds))

	s.writeJSON(w, http.StatusOK, buildRunResponse(id, cfg, pool.Workers(), duration, res))
}

// handleListRuns returns summaries of every stored run, newest first.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs := s.store.List()
	summaries := make([]RunSummary, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, RunSummary{
			ID:          run.ID,
			CreatedAt:   run.CreatedAt,
			Players:     run.Players,
			Seed:        run.Seed,
			Instances:   run.Instances,
			FailedCount: len(run.Results.FailedSeeds),
			DurationMs:  run.DurationMs,
		})
	}
	s.writeJSON(w, http.StatusOK, RunsResponse{
		Runs:          summaries,
		Count:         len(summaries),
		TesterVersion: version.Version,
	})
}

// handleGetRun returns one stored run in full.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "run not found",
			map[string]interface{}{"id": id})
		return
	}
	s.writeJSON(w, http.StatusOK, storedRunResponse(run))
}

// handleRunReport renders one stored run as an HTML chart page.
func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, ok := s.store.Get(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "run not found",
			map[string]interface{}{"id": id})
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, run.Players, run.Instances, run.Results); err != nil {
		s.logger.Printf("render_report_failed id=%s error=%q", id, err)
	}
}

// handleDeleteRun removes one stored run.
func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.store.Delete(id) {
		s.writeError(w, http.StatusNotFound, ErrTypeNotFound, "run not found",
			map[string]interface{}{"id": id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadSettings resolves the settings blob for one request: inline text when
// given, the configured settings file otherwise.
func (s *Server) loadSettings(req *RunRequest) ([]byte, error) {
	if req.SettingsText != "" {
		return []byte(req.SettingsText), nil
	}
	blob, err := os.ReadFile(s.cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("settings file: %v", err)
	}
	return blob, nil
}

func buildRunResponse(id string, cfg *game.Config, workers int, duration time.Duration, res batch.Results) RunResponse {
	return RunResponse{
		ID:            id,
		Players:       playerReports(cfg.DisplayNames(), cfg.Instances(), res),
		FailedSeeds:   ascendingSeeds(res.FailedSeeds),
		Instances:     cfg.Instances(),
		OKGames:       cfg.Instances() - uint32(len(res.FailedSeeds)),
		Workers:       workers,
		DurationMs:    duration.Milliseconds(),
		TesterVersion: version.Version,
	}
}

func storedRunResponse(run *runstore.Run) RunResponse {
	return RunResponse{
		ID:            run.ID,
		Players:       playerReports(run.Players, run.Instances, run.Results),
		FailedSeeds:   ascendingSeeds(run.Results.FailedSeeds),
		Instances:     run.Instances,
		OKGames:       run.Instances - uint32(len(run.Results.FailedSeeds)),
		Workers:       run.Workers,
		DurationMs:    run.DurationMs,
		TesterVersion: version.Version,
	}
}

// playerReports builds the per-seat reporting view. Averages and win rates
// are over finished games only; with none, they stay zero.
func playerReports(names [4]string, instances uint32, res batch.Results) []PlayerReport {
	ok := instances - uint32(len(res.FailedSeeds))
	reports := make([]PlayerReport, 0, len(names))
	for i, pr := range res.Players {
		rep := PlayerReport{
			Name:        names[i],
			TotalPoints: pr.TotalPoints,
			TotalWins:   pr.TotalWins,
			ScoreMin:    res.Scores[i].Min,
			ScoreMax:    res.Scores[i].Max,
			ScoreMean:   res.Scores[i].Mean(),
			ScoreStdDev: res.Scores[i].StdDev(),
		}
		if ok > 0 {
			rep.AveragePoints = float64(pr.TotalPoints) / float64(ok)
			rep.WinRate = float64(pr.TotalWins) * 100 / float64(ok)
		}
		reports = append(reports, rep)
	}
	return reports
}

func ascendingSeeds(seeds []uint32) []uint32 {
	out := append([]uint32(nil), seeds...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
