package commands

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLog = `[2024-01-01T10:00:00.100Z DEBUG] [SILENCE] count=1/10, rms=0.01, threshold=0.05
[2024-01-01T10:00:00.500Z INFO] [LIVE] 'hello'
[2024-01-01T10:00:01.000Z INFO] [COMMIT] 'hello world' (11 chars)
[2024-01-01T10:00:01.300Z DEBUG] [SEGMENT 0] text='Thank you.', empty=false, hallucination=true
not a log line
`

func writeSampleLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := os.WriteFile(path, []byte(sampleLog), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written. The parse command writes to os.Stdout directly, the
// same way the production binary does.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w

	runErr := fn()

	os.Stdout = old
	_ = w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}

	return string(out), runErr
}

func TestNewParseCommand_Flags(t *testing.T) {
	cmd := NewParseCommand()

	if !strings.HasPrefix(cmd.Use, "translog") {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	flags := []string{"full", "json", "output", "config", "webhook-url", "webhook-token", "webhook-trigger"}
	for _, flag := range flags {
		if cmd.Flags().Lookup(flag) == nil {
			t.Errorf("Missing flag: %s", flag)
		}
	}
}

func TestRunParse_Summary(t *testing.T) {
	logFile := writeSampleLog(t)

	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile})

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"Total events: 4",
		"Commits: 1",
		"Pauses: 0",
		"Hallucination rejections: 1",
		"hello world",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRunParse_JSONFlag(t *testing.T) {
	logFile := writeSampleLog(t)

	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile, "--json"})

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Got %d JSON lines, want 4:\n%s", len(lines), out)
	}
	for i, line := range lines {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(line), &obj); err != nil {
			t.Errorf("Line %d not valid JSON: %v", i+1, err)
		}
	}
}

func TestRunParse_JSONTakesPrecedenceOverFull(t *testing.T) {
	logFile := writeSampleLog(t)

	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile, "--full", "--json"})

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var obj map[string]interface{}
	firstLine := strings.SplitN(out, "\n", 2)[0]
	if err := json.Unmarshal([]byte(firstLine), &obj); err != nil {
		t.Errorf("--json did not win over --full, first line %q: %v", firstLine, err)
	}
}

func TestRunParse_FullTimeline(t *testing.T) {
	logFile := writeSampleLog(t)

	cmd := NewParseCommand()
	cmd.SetArgs([]string{logFile, "--full"})

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{
		"SILENCE: 1/10",
		"LIVE: hello",
		"COMMIT (11 chars): hello world",
		"SEGMENT [HALLUCINATION]: Thank you.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestRunParse_MissingFile(t *testing.T) {
	cmd := NewParseCommand()
	cmd.SetArgs([]string{"/no/such/debug.log"})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	out, err := captureStdout(t, cmd.Execute)
	if err == nil {
		t.Fatal("Execute() succeeded for missing file")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Error = %v, want 'not found'", err)
	}
	if out != "" {
		t.Errorf("Stdout not empty for missing file: %q", out)
	}
}

func TestRunParse_EmptyLogSucceeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.log")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewParseCommand()
	cmd.SetArgs([]string{path})

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Total events: 0") {
		t.Errorf("Output missing zero-event summary:\n%s", out)
	}
}

func TestRunParse_MultipleFilesMergeChronologically(t *testing.T) {
	dir := t.TempDir()
	fileA := filepath.Join(dir, "a.log")
	fileB := filepath.Join(dir, "b.log")
	if err := os.WriteFile(fileA, []byte("[2024-01-01T10:00:02Z INFO] [LIVE] 'second'\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(fileB, []byte("[2024-01-01T10:00:01Z INFO] [LIVE] 'first'\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewParseCommand()
	cmd.SetArgs([]string{fileA, fileB, "--full"})

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if strings.Index(out, "first") > strings.Index(out, "second") {
		t.Errorf("Events not merged chronologically:\n%s", out)
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	if cmd.Use != "validate <config-file>" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}
}

func TestRunValidate_Success(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "translog.yaml")
	content := `output:
  format: full
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "Configuration valid!") {
		t.Errorf("Output missing success message:\n%s", out)
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "translog.yaml")
	content := `timestamp_format:
  pattern: '(['
  layout: "2006"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cmd := NewValidateCommand()
	cmd.SetArgs([]string{configPath})
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if _, err := captureStdout(t, cmd.Execute); err == nil {
		t.Error("Execute() accepted invalid config")
	}
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	if cmd.Use != "version" {
		t.Errorf("Unexpected Use: %s", cmd.Use)
	}

	out, err := captureStdout(t, cmd.Execute)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "translog") {
		t.Errorf("Version output = %q", out)
	}
}
