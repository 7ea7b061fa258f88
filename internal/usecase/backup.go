package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/semmidev/stackvault/internal/domain"
	"github.com/semmidev/stackvault/internal/profile"
)

// Backup owns one job's state machine: detect the application stack,
// extract its database credentials, dump when possible, snapshot,
// enforce retention, verify the repository, report usage, clean up.
type Backup struct {
	root       string
	label      string
	scratchDir string
	bucket     string

	dumper   domain.Dumper
	engine   domain.SnapshotEngine
	usage    domain.ObjectUsage
	notifier domain.Notifier
	logger   Logger

	state    State
	detected *profile.Entry
}

type Logger interface {
	Infof(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Warnf(template string, args ...interface{})
}

// NewBackup wires one job. usage and notifier may be nil when the
// object-store keys or telegram settings are absent; both are
// best-effort collaborators.
func NewBackup(
	root string,
	label string,
	scratchDir string,
	bucket string,
	dumper domain.Dumper,
	engine domain.SnapshotEngine,
	usage domain.ObjectUsage,
	notifier domain.Notifier,
	logger Logger,
) *Backup {
	return &Backup{
		root:       root,
		label:      label,
		scratchDir: scratchDir,
		bucket:     bucket,
		dumper:     dumper,
		engine:     engine,
		usage:      usage,
		notifier:   notifier,
		logger:     logger,
		state:      StateIdle,
	}
}

// State returns the orchestrator's current (or terminal) state.
func (uc *Backup) State() State {
	return uc.state
}

// Execute runs the pipeline start to finish. Fatal stage errors abort
// the remaining mandatory stages; cleanup runs on every exit path.
func (uc *Backup) Execute(ctx context.Context) (err error) {
	start := time.Now()
	job := domain.NewJob(uc.root, uc.label)
	uc.logger.Infof("[%s] Starting backup of %s", uc.label, uc.root)

	defer func() {
		uc.state = StateCleaningUp
		uc.cleanup(job)

		elapsed := time.Since(start).Round(time.Second)
		if err != nil {
			uc.state = StateFailed
			uc.logger.Errorf("[%s] Backup failed after %s: %v", uc.label, elapsed, err)
		} else {
			uc.state = StateDone
			uc.logger.Infof("[%s] Backup completed in %s", uc.label, elapsed)
		}
		uc.sendOutcome(job, err, elapsed)
	}()

	uc.state = StateDetecting
	job = uc.detect(job)

	uc.state = StateExtractingConfig
	job = uc.extractConfig(job)

	if job.Credentials.Complete() {
		uc.state = StateDumping
		job, err = uc.dump(ctx, job)
		if err != nil {
			return &StageError{Stage: StageDump, Err: err}
		}
	} else {
		uc.state = StateSkippingDump
		uc.logger.Infof("[%s] Database credentials incomplete, skipping dump", uc.label)
	}

	uc.state = StateSnapshotting
	req := job.SnapshotRequest()
	if err = uc.engine.Backup(ctx, req); err != nil {
		return &StageError{Stage: StageSnapshot, Err: err}
	}
	uc.logger.Infof("[%s] Snapshot committed: %d include path(s), %d exclusion(s)",
		uc.label, len(req.Includes), len(req.Excludes))

	uc.state = StateRetaining
	if err = uc.engine.Forget(ctx, domain.DefaultRetention); err != nil {
		return &StageError{Stage: StageRetention, Err: err}
	}
	if err = uc.engine.Prune(ctx); err != nil {
		return &StageError{Stage: StageRetention, Err: err}
	}
	uc.logger.Infof("[%s] Retention enforced: keep %d daily, %d weekly, %d monthly",
		uc.label, domain.DefaultRetention.KeepDaily, domain.DefaultRetention.KeepWeekly,
		domain.DefaultRetention.KeepMonthly)

	uc.state = StateVerifying
	if err = uc.engine.Check(ctx); err != nil {
		uc.logger.Errorf("[%s] Repository consistency check failed, possible corruption: %v",
			uc.label, err)
		return &StageError{Stage: StageVerify, Err: err}
	}
	uc.logger.Infof("[%s] Repository consistency check passed", uc.label)

	uc.state = StateReporting
	uc.report(ctx)

	return nil
}

// detect probes the registry's fingerprints in priority order. A miss
// on every profile disables the dump but is not an error.
func (uc *Backup) detect(job domain.BackupJob) domain.BackupJob {
	entry, ok := profile.Detect(job.Root)
	if !ok {
		uc.logger.Infof("[%s] No known application stack detected under %s", uc.label, job.Root)
		return job
	}

	uc.logger.Infof("[%s] Detected %s (fingerprint: %s)", uc.label, entry.Profile, entry.Fingerprint)
	uc.detected = &entry
	return job.WithProfile(entry.Profile)
}

// extractConfig is best effort: an unreadable config degrades to empty
// credentials, which the dump fork treats as a skip.
func (uc *Backup) extractConfig(job domain.BackupJob) domain.BackupJob {
	if uc.detected == nil {
		return job
	}

	creds, extra, err := uc.detected.Extract(job.Root)
	if err != nil {
		uc.logger.Warnf("[%s] Config extraction failed, continuing without dump: %v", uc.label, err)
		return job
	}

	return job.WithConfig(creds, extra)
}

func (uc *Backup) dump(ctx context.Context, job domain.BackupJob) (domain.BackupJob, error) {
	if err := resetScratchDir(uc.scratchDir); err != nil {
		return job, err
	}

	dumpPath := filepath.Join(uc.scratchDir, job.Credentials.Database+".sql")
	uc.logger.Infof("[%s] Dumping database %q to %s", uc.label, job.Credentials.Database, dumpPath)

	if err := uc.dumper.Dump(ctx, job.Credentials, dumpPath); err != nil {
		return job, err
	}

	return job.WithDump(dumpPath), nil
}

// resetScratchDir guarantees an empty scratch directory so artifacts
// from a prior, possibly failed, run never leak into this snapshot.
func resetScratchDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to clear scratch directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return nil
}

// report never fails the job; every error degrades to a warning.
func (uc *Backup) report(ctx context.Context) {
	if uc.usage == nil {
		uc.logger.Warnf("[%s] Object store credentials not configured, skipping usage report", uc.label)
		return
	}

	size, err := uc.usage.TotalSize(ctx, uc.bucket)
	if err != nil {
		uc.logger.Warnf("[%s] Usage query failed: %v", uc.label, err)
		return
	}

	uc.logger.Infof("[%s] Repository bucket %s holds %.2f GiB", uc.label, uc.bucket, float64(size)/(1<<30))
}

// cleanup removes the dump artifact when one was actually created.
func (uc *Backup) cleanup(job domain.BackupJob) {
	if job.DumpPath == "" {
		return
	}
	if _, err := os.Stat(job.DumpPath); err != nil {
		return
	}
	if err := os.Remove(job.DumpPath); err != nil {
		uc.logger.Warnf("[%s] Failed to remove dump artifact %s: %v", uc.label, job.DumpPath, err)
	}
}

func (uc *Backup) sendOutcome(job domain.BackupJob, err error, elapsed time.Duration) {
	if uc.notifier == nil {
		return
	}

	var message string
	if err != nil {
		message = fmt.Sprintf("❌ Backup %s failed after %s: %v", uc.label, elapsed, err)
	} else {
		message = fmt.Sprintf("✅ Backup %s completed in %s (profile: %s)", uc.label, elapsed, job.Profile)
	}

	if nerr := uc.notifier.Notify(message); nerr != nil {
		uc.logger.Warnf("[%s] Failed to send notification: %v", uc.label, nerr)
	}
}
