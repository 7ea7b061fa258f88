package usecase

import "fmt"

// State names the orchestrator's position in the job state machine.
type State string

const (
	StateIdle             State = "idle"
	StateDetecting        State = "detecting"
	StateExtractingConfig State = "extracting_config"
	StateDumping          State = "dumping"
	StateSkippingDump     State = "skipping_dump"
	StateSnapshotting     State = "snapshotting"
	StateRetaining        State = "retaining"
	StateVerifying        State = "verifying"
	StateReporting        State = "reporting"
	StateCleaningUp       State = "cleaning_up"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Stage names the pipeline stage a fatal error originated in.
type Stage string

const (
	StageDump      Stage = "dump"
	StageSnapshot  Stage = "snapshot"
	StageRetention Stage = "retention"
	StageVerify    Stage = "verify"
)

// StageError wraps a fatal stage failure so callers can tell which
// stage aborted the pipeline.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
