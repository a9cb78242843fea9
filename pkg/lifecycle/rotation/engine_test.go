package rotation

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"markhub-hq/custodian/pkg/config"
)

// fakeEngineScript writes an executable shell script standing in for the
// rotation binary and returns its path.
func fakeEngineScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "logrotate")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestEngine(t *testing.T, binary string, verbose bool) *ExecEngine {
	t.Helper()
	dir := t.TempDir()
	cfg := config.RotationConfig{
		EngineBinary: binary,
		RuleFile:     filepath.Join(dir, "rules.conf"),
		StateFile:    filepath.Join(dir, "rotation.state"),
		Verbose:      verbose,
	}
	if err := os.WriteFile(cfg.RuleFile, []byte("# rules\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewExecEngine(cfg, NewStateStore(cfg.StateFile))
}

func TestExecEngine_Rotate_Success(t *testing.T) {
	engine := newTestEngine(t, fakeEngineScript(t, "exit 0"), false)

	status, err := engine.Rotate(context.Background())
	if err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}
	if status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
}

func TestExecEngine_Rotate_PassesStatusThrough(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"engine failure", "exit 1", 1},
		{"engine config error", "exit 3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newTestEngine(t, fakeEngineScript(t, tt.body), false)

			status, err := engine.Rotate(context.Background())
			if err != nil {
				t.Fatalf("Rotate() error = %v (engine ran, status is the contract)", err)
			}
			if status != tt.want {
				t.Errorf("status = %d, want %d", status, tt.want)
			}
		})
	}
}

func TestExecEngine_Rotate_ArgumentOrder(t *testing.T) {
	// The engine must receive the state path before the rule file, with
	// --verbose only when configured.
	engine := newTestEngine(t, fakeEngineScript(t, `echo "$@"`), true)

	var out bytes.Buffer
	engine.Stdout = &out

	if _, err := engine.Rotate(context.Background()); err != nil {
		t.Fatalf("Rotate() error = %v", err)
	}

	got := strings.TrimSpace(out.String())
	if !strings.HasPrefix(got, "--state ") {
		t.Errorf("args = %q, want --state first", got)
	}
	if !strings.Contains(got, "--verbose") {
		t.Errorf("args = %q, want --verbose when configured", got)
	}
	if !strings.HasSuffix(got, "rules.conf") {
		t.Errorf("args = %q, want rule file last", got)
	}
}

func TestExecEngine_Rotate_MissingBinary(t *testing.T) {
	engine := newTestEngine(t, filepath.Join(t.TempDir(), "nonexistent"), false)

	status, err := engine.Rotate(context.Background())
	if err == nil {
		t.Fatal("Rotate() should report an error when the binary cannot start")
	}
	if status != 127 {
		t.Errorf("status = %d, want 127 for unstartable engine", status)
	}
}
