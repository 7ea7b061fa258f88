package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/semmidev/stackvault/internal/domain"
)

// moodleDataExcludes are the transient dataroot subdirectories Moodle
// rebuilds on demand; snapshotting them only bloats the repository.
var moodleDataExcludes = []string{
	"cache",
	"localcache",
	"sessions",
	"temp",
	"trashdir",
	"lock",
}

var (
	moodleDBName   = regexp.MustCompile(`\$CFG->dbname\s*=\s*['"]([^'"]*)['"]`)
	moodleDBUser   = regexp.MustCompile(`\$CFG->dbuser\s*=\s*['"]([^'"]*)['"]`)
	moodleDBPass   = regexp.MustCompile(`\$CFG->dbpass\s*=\s*['"]([^'"]*)['"]`)
	moodleDataroot = regexp.MustCompile(`\$CFG->dataroot\s*=\s*['"]([^'"]*)['"]`)
)

func extractMoodle(root string) (domain.Credentials, domain.ExtraPaths, error) {
	content, err := readConfig(root, "config.php")
	if err != nil {
		return domain.Credentials{}, domain.ExtraPaths{}, err
	}

	creds := domain.Credentials{
		Database: firstMatch(moodleDBName, content),
		User:     firstMatch(moodleDBUser, content),
		Password: firstMatch(moodleDBPass, content),
	}

	var extra domain.ExtraPaths
	if dataroot := firstMatch(moodleDataroot, content); dataroot != "" {
		extra.Includes = []string{dataroot}
		extra.Excludes = make([]string, 0, len(moodleDataExcludes))
		for _, sub := range moodleDataExcludes {
			extra.Excludes = append(extra.Excludes, filepath.Join(dataroot, sub))
		}
	}

	return creds, extra, nil
}

var (
	wpDBName = regexp.MustCompile(`define\(\s*['"]DB_NAME['"]\s*,\s*['"]([^'"]*)['"]\s*\)`)
	wpDBUser = regexp.MustCompile(`define\(\s*['"]DB_USER['"]\s*,\s*['"]([^'"]*)['"]\s*\)`)
	wpDBPass = regexp.MustCompile(`define\(\s*['"]DB_PASSWORD['"]\s*,\s*['"]([^'"]*)['"]\s*\)`)
)

func extractWordPress(root string) (domain.Credentials, domain.ExtraPaths, error) {
	content, err := readConfig(root, "wp-config.php")
	if err != nil {
		return domain.Credentials{}, domain.ExtraPaths{}, err
	}

	creds := domain.Credentials{
		Database: firstMatch(wpDBName, content),
		User:     firstMatch(wpDBUser, content),
		Password: firstMatch(wpDBPass, content),
	}

	return creds, domain.ExtraPaths{}, nil
}

var (
	ncDBName   = regexp.MustCompile(`['"]dbname['"]\s*=>\s*['"]([^'"]*)['"]`)
	ncDBUser   = regexp.MustCompile(`['"]dbuser['"]\s*=>\s*['"]([^'"]*)['"]`)
	ncDBPass   = regexp.MustCompile(`['"]dbpassword['"]\s*=>\s*['"]([^'"]*)['"]`)
	ncDataDir  = regexp.MustCompile(`['"]datadirectory['"]\s*=>\s*['"]([^'"]*)['"]`)
)

func extractNextcloud(root string) (domain.Credentials, domain.ExtraPaths, error) {
	content, err := readConfig(root, filepath.Join("config", "config.php"))
	if err != nil {
		return domain.Credentials{}, domain.ExtraPaths{}, err
	}

	creds := domain.Credentials{
		Database: firstMatch(ncDBName, content),
		User:     firstMatch(ncDBUser, content),
		Password: firstMatch(ncDBPass, content),
	}

	var extra domain.ExtraPaths
	if dataDir := firstMatch(ncDataDir, content); dataDir != "" {
		extra.Includes = []string{dataDir}
	}

	return creds, extra, nil
}

var (
	joomlaDBName = regexp.MustCompile(`public\s+\$db\s*=\s*['"]([^'"]*)['"]`)
	joomlaDBUser = regexp.MustCompile(`public\s+\$user\s*=\s*['"]([^'"]*)['"]`)
	joomlaDBPass = regexp.MustCompile(`public\s+\$password\s*=\s*['"]([^'"]*)['"]`)
)

func extractJoomla(root string) (domain.Credentials, domain.ExtraPaths, error) {
	content, err := readConfig(root, "configuration.php")
	if err != nil {
		return domain.Credentials{}, domain.ExtraPaths{}, err
	}

	creds := domain.Credentials{
		Database: firstMatch(joomlaDBName, content),
		User:     firstMatch(joomlaDBUser, content),
		Password: firstMatch(joomlaDBPass, content),
	}

	return creds, domain.ExtraPaths{}, nil
}

func readConfig(root, relPath string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", relPath, err)
	}
	return string(data), nil
}

func firstMatch(re *regexp.Regexp, content string) string {
	m := re.FindStringSubmatch(content)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
