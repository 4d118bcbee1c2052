package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCommandExecution helps test cobra command execution
type TestCommandExecution struct {
	Command      *cobra.Command
	Args         []string
	Stdin        string
	ExpectError  bool
	ExpectOutput []string
	Validate     func(t *testing.T, stdout, stderr string, err error)
}

// ExecuteCommandTest runs a command test with captured stdin/stdout/stderr
func ExecuteCommandTest(t *testing.T, test TestCommandExecution) {
	t.Helper()

	if test.Command == nil {
		test.Command = newRootCmd()
	}

	var stdout, stderr bytes.Buffer
	test.Command.SetIn(strings.NewReader(test.Stdin))
	test.Command.SetOut(&stdout)
	test.Command.SetErr(&stderr)
	test.Command.SetArgs(test.Args)

	err := test.Command.Execute()

	if test.ExpectError {
		assert.Error(t, err)
	} else {
		assert.NoError(t, err)
	}

	for _, expected := range test.ExpectOutput {
		assert.Contains(t, stdout.String(), expected)
	}

	if test.Validate != nil {
		test.Validate(t, stdout.String(), stderr.String(), err)
	}
}

// captureMessages redirects the status helpers into a buffer for one test
func captureMessages(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := messageOutput
	messageOutput = &buf
	t.Cleanup(func() { messageOutput = old })
	return &buf
}

// createGazetteer writes a gazetteer extension file and returns its path
func createGazetteer(t *testing.T) string {
	t.Helper()
	content := `places:
  - name: Harlem
    lat: 40.8116
    lon: -73.9465
aliases:
  spanish harlem: harlem
`
	path := filepath.Join(t.TempDir(), "places.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}
