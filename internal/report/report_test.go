package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubReporter_AppendsOutputs(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "gh_output")
	t.Setenv("GITHUB_OUTPUT", outFile)

	rep := NewGitHubReporter()
	require.NoError(t, rep.SetOutput("backup_folder_name", "backup-2026-08-23T10-30-45"))
	require.NoError(t, rep.SetOutput("error_message", "ERROR: boom"))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t,
		"backup_folder_name=backup-2026-08-23T10-30-45\nerror_message=ERROR: boom\n",
		string(data))
}

func TestGitHubReporter_MultilineValue(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "gh_output")
	t.Setenv("GITHUB_OUTPUT", outFile)

	// API error bodies can be pretty-printed JSON; the value must survive
	// as a single parseable output entry.
	value := "ERROR: daadmin: HTTP 500: {\n  \"error\": \"boom\"\n}"
	rep := NewGitHubReporter()
	require.NoError(t, rep.SetOutput("error_message", value))

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "error_message<<ghadelimiter_"),
		"expected heredoc opener, got %q", lines[0])

	delim := strings.TrimPrefix(lines[0], "error_message<<")
	assert.Regexp(t, `^ghadelimiter_[0-9a-f]{16}$`, delim)
	assert.Equal(t, value, strings.Join(lines[1:4], "\n"))
	assert.Equal(t, delim, lines[4])
}

func TestFormatOutput_SingleLine(t *testing.T) {
	assert.Equal(t, "backup_folder_name=backup-x\n",
		formatOutput("backup_folder_name", "backup-x"))
}

func TestGitHubReporter_NoOutputFile(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")

	rep := NewGitHubReporter()
	// Harmless no-op outside CI
	require.NoError(t, rep.SetOutput("backup_folder_name", "x"))
	assert.False(t, rep.Failed())
}

func TestGitHubReporter_Fail(t *testing.T) {
	t.Setenv("GITHUB_OUTPUT", "")

	var stderr bytes.Buffer
	rep := NewGitHubReporter()
	rep.stderr = &stderr

	rep.Fail("something broke")
	assert.True(t, rep.Failed())
	assert.Equal(t, "::error::something broke\n", stderr.String())
}

func TestStdoutReporter(t *testing.T) {
	var out bytes.Buffer
	rep := &StdoutReporter{W: &out}

	require.NoError(t, rep.SetOutput("backup_folder_name", "backup-x"))
	rep.Fail("boom")

	assert.True(t, rep.Failed())
	assert.Equal(t, "backup_folder_name=backup-x\nFAILED: boom\n", out.String())
}
