package api

import "time"

// APIError is the structured body every failing endpoint returns.
type APIError struct {
	Type    string                 `json:"type"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e APIError) Error() string {
	return e.Message
}

// Error types
const (
	ErrTypeValidation   = "validation_error"
	ErrTypeUnauthorized = "unauthorized"
	ErrTypeNotFound     = "not_found"
	ErrTypeRunFailed    = "run_failed"
	ErrTypeTimeout      = "timeout"
	ErrTypeInternal     = "internal_error"
)

// RunRequest asks the service to play one batch of games.
type RunRequest struct {
	Players      []string `json:"players"`
	Seed         uint32   `json:"seed"`
	Instances    uint32   `json:"instances"`
	SettingsText string   `json:"settings_text,omitempty"`
	Workers      int      `json:"workers,omitempty"`
	TimeoutMs    int      `json:"timeout_ms,omitempty"`
}

// PlayerReport is the reporting view of one seat's aggregate.
type PlayerReport struct {
	Name          string  `json:"name"`
	TotalPoints   uint32  `json:"total_points"`
	TotalWins     uint32  `json:"total_wins"`
	AveragePoints float64 `json:"average_points"`
	WinRate       float64 `json:"win_rate"`
	ScoreMin      uint32  `json:"score_min"`
	ScoreMax      uint32  `json:"score_max"`
	ScoreMean     float64 `json:"score_mean"`
	ScoreStdDev   float64 `json:"score_stddev"`
}

// RunResponse is the full result of one executed batch.
type RunResponse struct {
	ID            string         `json:"id"`
	Players       []PlayerReport `json:"players"`
	FailedSeeds   []uint32       `json:"failed_seeds"`
	Instances     uint32         `json:"instances"`
	OKGames       uint32         `json:"ok_games"`
	Workers       int            `json:"workers"`
	DurationMs    int64          `json:"duration_ms"`
	TesterVersion string         `json:"tester_version"`
}

// RunSummary is the listing view of a stored run.
type RunSummary struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Players     [4]string `json:"players"`
	Seed        uint32    `json:"seed"`
	Instances   uint32    `json:"instances"`
	FailedCount int       `json:"failed_count"`
	DurationMs  int64     `json:"duration_ms"`
}

// RunsResponse lists stored runs newest first.
type RunsResponse struct {
	Runs          []RunSummary `json:"runs"`
	Count         int          `json:"count"`
	TesterVersion string       `json:"tester_version"`
}

// HealthResponse reports service liveness and whether the configured game
// binary looks runnable.
type HealthResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message,omitempty"`
	TesterVersion string `json:"tester_version"`
	Uptime        string `json:"uptime"`
	Timestamp     string `json:"timestamp"`
}
