package domain

import "context"

// Dumper exports one database to a portable text artifact.
type Dumper interface {
	Dump(ctx context.Context, creds Credentials, outputPath string) error
}

// SnapshotEngine is the external content-addressed backup store. It owns
// the repository format, retention mechanics, and single-writer locking.
type SnapshotEngine interface {
	Backup(ctx context.Context, req SnapshotRequest) error
	Forget(ctx context.Context, policy RetentionPolicy) error
	Prune(ctx context.Context) error
	Check(ctx context.Context) error
}

// ObjectUsage queries the object store backing the repository.
type ObjectUsage interface {
	TotalSize(ctx context.Context, bucket string) (int64, error)
}

// Notifier delivers a best-effort, out-of-band job outcome message.
type Notifier interface {
	Notify(message string) error
}
