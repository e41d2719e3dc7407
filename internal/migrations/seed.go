package migrations

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecuteSeed executes the configured seed command from dir
func ExecuteSeed(ctx context.Context, seedCommand, dir string) error {
	parts := strings.Fields(seedCommand)
	if len(parts) == 0 {
		return fmt.Errorf("seed command not configured")
	}

	cmd := exec.CommandContext(ctx, parts[0], parts[1:]...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error executing seed: %w", err)
	}
	return nil
}
