// Package report carries run results out to the surrounding CI
// environment: named outputs plus a pass/fail status.
package report

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Reporter receives the run's outputs. The orchestrator takes one as an
// injected dependency so tests can capture outputs without a live CI
// environment.
type Reporter interface {
	SetOutput(key, value string) error
	Fail(message string)
}

// GitHubReporter writes outputs in the GitHub Actions convention:
// key=value lines appended to the file named by GITHUB_OUTPUT, and
// ::error:: annotations on failure.
type GitHubReporter struct {
	outputPath string
	stderr     io.Writer
	failed     bool
}

var _ Reporter = (*GitHubReporter)(nil)

// NewGitHubReporter reads GITHUB_OUTPUT from the environment. An empty
// value leaves SetOutput as a no-op, which keeps local runs harmless.
func NewGitHubReporter() *GitHubReporter {
	return &GitHubReporter{
		outputPath: os.Getenv("GITHUB_OUTPUT"),
		stderr:     os.Stderr,
	}
}

func (r *GitHubReporter) SetOutput(key, value string) error {
	if r.outputPath == "" {
		return nil
	}
	f, err := os.OpenFile(r.outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file %q: %w", r.outputPath, err)
	}
	defer f.Close()

	if _, err := f.WriteString(formatOutput(key, value)); err != nil {
		return fmt.Errorf("write output %q: %w", key, err)
	}
	return nil
}

// formatOutput renders one output entry. Values containing newlines use
// the heredoc form; a bare key=value line with continuation lines would
// make the runner reject the whole output file.
func formatOutput(key, value string) string {
	if !strings.Contains(value, "\n") {
		return fmt.Sprintf("%s=%s\n", key, value)
	}
	delim := "ghadelimiter_" + randomHex(8)
	for strings.Contains(value, delim) {
		delim = "ghadelimiter_" + randomHex(8)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", key, delim, value, delim)
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (r *GitHubReporter) Fail(message string) {
	r.failed = true
	fmt.Fprintf(r.stderr, "::error::%s\n", message)
}

// Failed reports whether Fail was called during the run.
func (r *GitHubReporter) Failed() bool { return r.failed }

// StdoutReporter prints outputs as key=value lines to a writer, for local
// runs and tests.
type StdoutReporter struct {
	W      io.Writer
	failed bool
}

var _ Reporter = (*StdoutReporter)(nil)

func NewStdoutReporter() *StdoutReporter {
	return &StdoutReporter{W: os.Stdout}
}

func (r *StdoutReporter) SetOutput(key, value string) error {
	_, err := fmt.Fprintf(r.W, "%s=%s\n", key, value)
	return err
}

func (r *StdoutReporter) Fail(message string) {
	r.failed = true
	fmt.Fprintf(r.W, "FAILED: %s\n", message)
}

// Failed reports whether Fail was called during the run.
func (r *StdoutReporter) Failed() bool { return r.failed }
