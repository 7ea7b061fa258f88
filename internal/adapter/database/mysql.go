package database

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/semmidev/stackvault/internal/domain"
)

// MySQLDumper exports a database with mysqldump. All recognized stacks
// run on MySQL or MariaDB, so this is the only dump utility wired in.
type MySQLDumper struct{}

func NewMySQL() *MySQLDumper {
	return &MySQLDumper{}
}

func (m *MySQLDumper) Dump(ctx context.Context, creds domain.Credentials, outputPath string) error {
	args := []string{
		fmt.Sprintf("--user=%s", creds.User),
		fmt.Sprintf("--password=%s", creds.Password),
		"--single-transaction",
		"--quick",
		"--lock-tables=false",
		fmt.Sprintf("--result-file=%s", outputPath),
		creds.Database,
	}

	cmd := exec.CommandContext(ctx, "mysqldump", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mysqldump failed: %w, output: %s", err, string(output))
	}

	return nil
}
