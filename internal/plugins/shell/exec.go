package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nagusamecs/opennotes-desktop/host/internal/shared/types"
)

// execute runs a one-shot command through the platform shell
func (p *Provider) execute(ctx context.Context, params map[string]interface{}) (*types.Result, error) {
	command, err := types.GetString(params, "command", true)
	if err != nil {
		return failure(err.Error())
	}

	cwd := p.dataDir
	if dir, _ := types.GetString(params, "cwd", false); dir != "" {
		cwd, err = p.scopePath(dir)
		if err != nil {
			return failure(err.Error())
		}
	}

	timeout := p.timeoutSeconds
	if v, ok := types.GetInt(params, "timeout"); ok {
		timeout = v
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeout)*time.Second)
		defer cancel()
	}

	bin, flag := platformShell()
	cmd := exec.CommandContext(ctx, bin, flag, command)
	cmd.Dir = cwd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(runErr, &exitErr):
			exitCode = exitErr.ExitCode()
		case ctx.Err() == context.DeadlineExceeded:
			return failure(fmt.Sprintf("command timed out after %ds", timeout))
		default:
			return failure(fmt.Sprintf("execution failed: %v", runErr))
		}
	}

	return success(map[string]interface{}{
		"stdout":      stdout.String(),
		"stderr":      stderr.String(),
		"exit_code":   exitCode,
		"duration_ms": elapsed.Milliseconds(),
	})
}

// open hands a file or URL to the desktop's default handler
func (p *Provider) open(params map[string]interface{}) (*types.Result, error) {
	target, err := types.GetString(params, "target", true)
	if err != nil {
		return failure(err.Error())
	}

	if err := p.opener(target); err != nil {
		return failure(fmt.Sprintf("open failed: %v", err))
	}

	return success(map[string]interface{}{"opened": true, "target": target})
}

// scopePath confines a relative cwd to the data directory
func (p *Provider) scopePath(dir string) (string, error) {
	full := dir
	if !filepath.IsAbs(full) {
		full = filepath.Join(p.dataDir, full)
	}
	full = filepath.Clean(full)

	if full != p.dataDir && !strings.HasPrefix(full, p.dataDir+string(filepath.Separator)) {
		return "", fmt.Errorf("cwd escapes data directory: %s", dir)
	}
	return full, nil
}

// platformShell returns the shell binary and its command flag
func platformShell() (string, string) {
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "/bin/sh", "-c"
}

// systemOpener launches the OS default handler without waiting on it
func systemOpener(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
