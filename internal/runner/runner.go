// Package runner executes the external tools (git, npm, node, uv) the installer depends on.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/hashicorp/go-hclog"

	"github.com/flowvibe/mcp-installer/internal/runtime"
)

// ErrCommandFailed is returned when a subprocess cannot be started or exits non-zero.
var ErrCommandFailed = errors.New("command failed")

// maxOutputLines limits how much subprocess output is carried in an error.
const maxOutputLines = 20

// Command describes a single subprocess invocation.
type Command struct {
	Name string
	Args []string

	// Dir is the working directory; empty means the current directory.
	Dir string

	// Env holds variables added to (or replacing those in) the current environment.
	Env map[string]string
}

// String renders the command line with shell quoting, for logs and error messages.
func (c Command) String() string {
	return shellescape.QuoteCommand(append([]string{c.Name}, c.Args...))
}

// Runner runs subprocesses.
type Runner interface {
	// Run executes cmd and returns its combined stdout and stderr.
	// A non-zero exit is reported as an error wrapping ErrCommandFailed.
	Run(ctx context.Context, cmd Command) (string, error)
}

// ExecRunner runs commands with os/exec.
// Stdin is never inherited, since stdin carries the MCP protocol when serving over stdio.
type ExecRunner struct {
	logger hclog.Logger
}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner(logger hclog.Logger) *ExecRunner {
	return &ExecRunner{logger: logger.Named("runner")}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (string, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = runtime.Environ(cmd.Env)
	}

	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out

	start := time.Now()
	r.logger.Debug("Running command", "command", cmd.String(), "dir", cmd.Dir)

	err := c.Run()
	output := out.String()

	if err != nil {
		r.logger.Debug(
			"Command failed",
			"command", cmd.String(),
			"dir", cmd.Dir,
			"duration", time.Since(start),
			"error", err,
			"output", tail(output, maxOutputLines),
		)
		return output, fmt.Errorf("%w: %s: %w%s", ErrCommandFailed, cmd.String(), err, formatTail(output))
	}

	r.logger.Trace("Command finished", "command", cmd.String(), "duration", time.Since(start))

	return output, nil
}

// Available reports whether the runtime can be executed, by asking it for its version.
func Available(ctx context.Context, r Runner, rt runtime.Runtime, goos string) bool {
	_, err := r.Run(ctx, Command{Name: rt.Command(goos), Args: []string{"--version"}})
	return err == nil
}

// tail returns at most n trailing non-empty lines of s.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\r\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func formatTail(output string) string {
	t := tail(output, maxOutputLines)
	if t == "" {
		return ""
	}
	return "\n" + t
}
