package restic

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/semmidev/stackvault/internal/config"
	"github.com/semmidev/stackvault/internal/domain"
)

// Client drives the restic binary. Repository location and credentials
// travel via the environment so they never appear in process listings.
type Client struct {
	repository string
	password   string
	accessKey  string
	secretKey  string
}

func New(cfg *config.Config) *Client {
	return &Client{
		repository: cfg.RepositoryPath,
		password:   cfg.RepositoryPassword,
		accessKey:  cfg.ObjectStoreAccessKey,
		secretKey:  cfg.ObjectStoreSecretKey,
	}
}

func (c *Client) Backup(ctx context.Context, req domain.SnapshotRequest) error {
	return c.run(ctx, backupArgs(req)...)
}

func (c *Client) Forget(ctx context.Context, policy domain.RetentionPolicy) error {
	return c.run(ctx, forgetArgs(policy)...)
}

func (c *Client) Prune(ctx context.Context) error {
	return c.run(ctx, "prune")
}

func (c *Client) Check(ctx context.Context) error {
	return c.run(ctx, "check")
}

func backupArgs(req domain.SnapshotRequest) []string {
	args := []string{"backup"}
	if req.Quiet {
		args = append(args, "--quiet")
	}
	for _, p := range req.Excludes {
		args = append(args, "--exclude", p)
	}
	return append(args, req.Includes...)
}

func forgetArgs(policy domain.RetentionPolicy) []string {
	return []string{
		"forget",
		"--keep-daily", strconv.Itoa(policy.KeepDaily),
		"--keep-weekly", strconv.Itoa(policy.KeepWeekly),
		"--keep-monthly", strconv.Itoa(policy.KeepMonthly),
	}
}

func (c *Client) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "restic", args...)
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("RESTIC_REPOSITORY=%s", c.repository),
		fmt.Sprintf("RESTIC_PASSWORD=%s", c.password),
		fmt.Sprintf("AWS_ACCESS_KEY_ID=%s", c.accessKey),
		fmt.Sprintf("AWS_SECRET_ACCESS_KEY=%s", c.secretKey),
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("restic %s failed: %w, output: %s", args[0], err, string(output))
	}

	return nil
}
