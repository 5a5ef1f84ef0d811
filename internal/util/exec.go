package util

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/tbeam-mesh/pacool/internal/ui"
)

// SafeCmdExecution runs a helper executable of the cmd hal backends and
// returns its trimmed stdout. The executable must not be writable by others.
func SafeCmdExecution(executable string, args []string, timeout time.Duration) (string, error) {
	if _, err := CheckFilePermissionsForExecution(executable); err != nil {
		return "", fmt.Errorf("refusing to execute %s: %w", executable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, executable, args...).Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ui.Warning("%s did not finish within %s", executable, timeout)
		return "", ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		if len(stderr) > 0 {
			return "", fmt.Errorf("%s exited with %d: %s", executable, exitErr.ExitCode(), stderr)
		}
		return "", fmt.Errorf("%s exited with %d", executable, exitErr.ExitCode())
	}
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(out)), nil
}
