package profile

import (
	"os"
	"path/filepath"

	"github.com/semmidev/stackvault/internal/domain"
)

// Extractor pulls database credentials and extra snapshot paths out of a
// stack's native configuration under the given root. It fails only when
// the configuration file cannot be opened; a key that does not match
// degrades to an empty field.
type Extractor func(root string) (domain.Credentials, domain.ExtraPaths, error)

// Entry binds a profile to its fingerprint file and extraction rule.
type Entry struct {
	Profile     domain.Profile
	Fingerprint string
	Extract     Extractor
}

// registry is the fixed priority list. Order matters: when a directory
// carries several fingerprints the earlier entry wins. Moodle sits first
// because its config.php is the most collision-prone fingerprint name.
var registry = []Entry{
	{domain.ProfileMoodle, "config.php", extractMoodle},
	{domain.ProfileWordPress, "wp-config.php", extractWordPress},
	{domain.ProfileNextcloud, filepath.Join("config", "config.php"), extractNextcloud},
	{domain.ProfileJoomla, "configuration.php", extractJoomla},
}

// Registry returns the known profiles in priority order.
func Registry() []Entry {
	out := make([]Entry, len(registry))
	copy(out, registry)
	return out
}

// Detect returns the first profile whose fingerprint file exists under
// root. A miss on every entry is a normal outcome, not an error.
func Detect(root string) (Entry, bool) {
	for _, e := range registry {
		if _, err := os.Stat(filepath.Join(root, e.Fingerprint)); err == nil {
			return e, true
		}
	}
	return Entry{}, false
}
