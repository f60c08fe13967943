package domain

import "time"

// SyncPhase is the state of the orchestrator.
type SyncPhase string

const (
	SyncPhaseIdle         SyncPhase = "Idle"
	SyncPhaseInitializing SyncPhase = "Initializing"
	SyncPhaseProcessing   SyncPhase = "Processing"
	SyncPhaseFinishing    SyncPhase = "Finishing"
	SyncPhaseDone         SyncPhase = "Done"
	SyncPhaseFailed       SyncPhase = "Failed"
)

type QueueItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// ItemResult is the outcome of syncing one indicator. Failures are data, not errors.
type ItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Deleted int    `json:"deleted,omitempty"`
	Skipped int    `json:"skipped,omitempty"`
	Stage   string `json:"stage,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SyncJob lives from init until finish of one orchestrated run.
type SyncJob struct {
	ID           string        `json:"id"`
	Phase        SyncPhase     `json:"phase"`
	Queue        []QueueItem   `json:"queue"`
	CurrentIndex int           `json:"current_index"`
	Results      []*ItemResult `json:"results"`
	StartedAt    time.Time     `json:"started_at"`
}

// Progress is reported after every processed item.
type Progress struct {
	Index   int         `json:"index"`
	Total   int         `json:"total"`
	Percent int         `json:"percent"`
	Item    QueueItem   `json:"item"`
	Result  *ItemResult `json:"result"`
}

// RunReport summarizes a full init → process → finish run.
type RunReport struct {
	JobID      string        `json:"job_id"`
	Phase      SyncPhase     `json:"phase"`
	Total      int           `json:"total"`
	Succeeded  int           `json:"succeeded"`
	Failed     int           `json:"failed"`
	Rows       int           `json:"rows"`
	Results    []*ItemResult `json:"results"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
}

// ReplaceResult reports what the reconciler did for one indicator.
type ReplaceResult struct {
	Deleted  int `json:"deleted"`
	Inserted int `json:"inserted"`
}
