package operations

import (
	"sync"
	"time"
)

// Stage identifiers in execution order.
const (
	StageLoad       = "load"
	StageClean      = "clean"
	StageDimensions = "dimensions"
	StageFact       = "fact"
	StageExport     = "export"
	StageWarehouse  = "warehouse"
)

// StageStatus represents the current status of a pipeline stage.
type StageStatus string

const (
	StageStatusPending   StageStatus = "pending"
	StageStatusActive    StageStatus = "active"
	StageStatusCompleted StageStatus = "completed"
	StageStatusFailed    StageStatus = "failed"
	StageStatusSkipped   StageStatus = "skipped"
)

// StageState tracks the runtime state of one stage: status, timing and the
// number of rows it produced.
type StageState struct {
	mu        sync.RWMutex
	ID        string
	Status    StageStatus
	StartTime *time.Time
	EndTime   *time.Time
	RowCount  int
	Err       error
}

// NewStageState creates a pending stage state.
func NewStageState(id string) *StageState {
	return &StageState{ID: id, Status: StageStatusPending}
}

// Start marks the stage active.
func (s *StageState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.StartTime = &now
	s.Status = StageStatusActive
}

// Complete marks the stage completed with the number of rows it produced.
func (s *StageState) Complete(rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusCompleted
	s.RowCount = rows
}

// Fail marks the stage failed.
func (s *StageState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = StageStatusFailed
	s.Err = err
}

// Skip marks the stage skipped.
func (s *StageState) Skip() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = StageStatusSkipped
}

// Duration returns how long the stage ran, or zero if it has not finished.
func (s *StageState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.StartTime == nil || s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(*s.StartTime)
}
