package domain

import (
	"time"
)

// Profile identifies the application stack detected under the backup root.
type Profile string

const (
	ProfileNone      Profile = ""
	ProfileMoodle    Profile = "moodle"
	ProfileWordPress Profile = "wordpress"
	ProfileNextcloud Profile = "nextcloud"
	ProfileJoomla    Profile = "joomla"
)

func (p Profile) String() string {
	if p == ProfileNone {
		return "none"
	}
	return string(p)
}

// Credentials holds the database access fields extracted from a stack's
// native configuration. All-empty is a valid value meaning "no dump".
type Credentials struct {
	Database string
	User     string
	Password string
}

// Complete reports whether all three fields are present. The dump stage
// runs only for complete credentials.
func (c Credentials) Complete() bool {
	return c.Database != "" && c.User != "" && c.Password != ""
}

// ExtraPaths carries the stack-specific additions to the snapshot scope.
// A nil Excludes means the profile defines no exclusion mechanism at all;
// a non-nil empty slice means it does but currently excludes nothing.
type ExtraPaths struct {
	Includes []string
	Excludes []string
}

// BackupJob is the single value threaded through the pipeline. Stages
// consume a job and return a new one; no stage mutates a job in place.
type BackupJob struct {
	Root        string
	Label       string
	Profile     Profile
	Credentials Credentials
	Extra       ExtraPaths
	DumpPath    string
	Includes    []string
	StartedAt   time.Time
}

func NewJob(root, label string) BackupJob {
	return BackupJob{
		Root:      root,
		Label:     label,
		Includes:  []string{root},
		StartedAt: time.Now(),
	}
}

func (j BackupJob) WithProfile(p Profile) BackupJob {
	j.Profile = p
	return j
}

// WithConfig records the extracted credentials and appends the profile's
// extra include paths to the snapshot scope.
func (j BackupJob) WithConfig(c Credentials, e ExtraPaths) BackupJob {
	j.Credentials = c
	j.Extra = e
	j.Includes = appendPaths(j.Includes, e.Includes...)
	return j
}

// WithDump records the dump artifact and appends it to the snapshot scope.
func (j BackupJob) WithDump(path string) BackupJob {
	j.DumpPath = path
	j.Includes = appendPaths(j.Includes, path)
	return j
}

// SnapshotRequest builds the engine request for this job's current scope.
func (j BackupJob) SnapshotRequest() SnapshotRequest {
	return SnapshotRequest{
		Includes: j.Includes,
		Excludes: j.Extra.Excludes,
		Quiet:    true,
	}
}

func appendPaths(paths []string, more ...string) []string {
	out := make([]string, 0, len(paths)+len(more))
	out = append(out, paths...)
	return append(out, more...)
}

// SnapshotRequest is what the snapshot engine receives: the ordered
// include set and zero or more exclusion flags.
type SnapshotRequest struct {
	Includes []string
	Excludes []string
	Quiet    bool
}

// RetentionPolicy holds the snapshot counts preserved during pruning.
type RetentionPolicy struct {
	KeepDaily   int
	KeepWeekly  int
	KeepMonthly int
}

// DefaultRetention applies to every job; it is not configurable per run.
var DefaultRetention = RetentionPolicy{
	KeepDaily:   7,
	KeepWeekly:  5,
	KeepMonthly: 12,
}
