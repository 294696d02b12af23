// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"testing"
)

type helperProcess struct {
	stdout   string
	stderr   string
	exitCode int
	calls    [][]string
}

// commandFunc returns an ExecCommandFunc that re-executes the test binary
// as TestHelperProcess with the configured output.
func (h *helperProcess) commandFunc(t *testing.T) ExecCommandFunc {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) *exec.Cmd {
		h.calls = append(h.calls, append([]string{name}, args...))

		cs := []string{"-test.run=TestHelperProcess", "--", name}
		cs = append(cs, args...)
		//nolint:gosec // TestHelperProcess is a test-only pattern
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = []string{
			"GO_WANT_HELPER_PROCESS=1",
			"GO_HELPER_EXIT_CODE=" + strconv.Itoa(h.exitCode),
			"GO_HELPER_STDOUT=" + h.stdout,
			"GO_HELPER_STDERR=" + h.stderr,
		}
		return cmd
	}
}

// TestHelperProcess is not a real test. It is invoked by commandFunc.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	fmt.Fprint(os.Stdout, os.Getenv("GO_HELPER_STDOUT"))
	fmt.Fprint(os.Stderr, os.Getenv("GO_HELPER_STDERR"))
	code, _ := strconv.Atoi(os.Getenv("GO_HELPER_EXIT_CODE"))
	os.Exit(code)
}

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		helper helperProcess
		want   VersionInfo
	}{
		{"version on stderr", helperProcess{stderr: java8Output}, VersionInfo{Raw: "1.8.0_372", Major: 8, Legacy: true}},
		{"version on stdout", helperProcess{stdout: java11Output}, VersionInfo{Raw: "11.0.12", Major: 11}},
		{"non-zero exit with token", helperProcess{stderr: java21EAOutput, exitCode: 1}, VersionInfo{Raw: "21-ea", Major: 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := tt.helper
			d := NewDetector(WithExecCommand(h.commandFunc(t)))
			got, err := d.Detect(context.Background())
			if err != nil {
				t.Fatalf("Detect() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Detect() = %+v, want %+v", got, tt.want)
			}
			if len(h.calls) != 1 || !slices.Equal(h.calls[0], []string{"java", "-version"}) {
				t.Errorf("invocations = %v, want [[java -version]]", h.calls)
			}
		})
	}
}

func TestDetector_Detect_Failures(t *testing.T) {
	t.Parallel()

	t.Run("no token", func(t *testing.T) {
		t.Parallel()

		h := helperProcess{stdout: "nothing useful"}
		_, err := NewDetector(WithExecCommand(h.commandFunc(t))).Detect(context.Background())
		if !errors.Is(err, ErrToolchainDetection) {
			t.Fatalf("Detect() error = %v, want ErrToolchainDetection", err)
		}
	})

	t.Run("process exits non-zero without output", func(t *testing.T) {
		t.Parallel()

		h := helperProcess{exitCode: 2}
		_, err := NewDetector(WithExecCommand(h.commandFunc(t))).Detect(context.Background())
		var detErr *DetectionError
		if !errors.As(err, &detErr) {
			t.Fatalf("Detect() error = %v, want *DetectionError", err)
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Errorf("error should expose the exit error, got: %v", err)
		}
	})

	t.Run("binary missing", func(t *testing.T) {
		t.Parallel()

		d := NewDetector(WithCommand("pomctl-no-such-java-binary", "-version"))
		_, err := d.Detect(context.Background())
		if !errors.Is(err, ErrToolchainDetection) {
			t.Fatalf("Detect() error = %v, want ErrToolchainDetection", err)
		}
		if !errors.Is(err, exec.ErrNotFound) {
			t.Errorf("error should wrap exec.ErrNotFound, got: %v", err)
		}
	})

	t.Run("empty command", func(t *testing.T) {
		t.Parallel()

		_, err := NewDetector(WithCommand()).Detect(context.Background())
		if !errors.Is(err, ErrToolchainDetection) {
			t.Fatalf("Detect() error = %v, want ErrToolchainDetection", err)
		}
	})
}

func TestParseCommandLine(t *testing.T) {
	t.Setenv("POMCTL_TEST_JAVA_HOME", "/opt/jdk 21")

	got, err := ParseCommandLine(`"$POMCTL_TEST_JAVA_HOME/bin/java" -version`)
	if err != nil {
		t.Fatalf("ParseCommandLine() error: %v", err)
	}
	want := []string{"/opt/jdk 21/bin/java", "-version"}
	if !slices.Equal(got, want) {
		t.Errorf("ParseCommandLine() = %q, want %q", got, want)
	}

	if _, err := ParseCommandLine("   "); err == nil {
		t.Error("ParseCommandLine() with blank line expected error")
	}
	if _, err := ParseCommandLine(`java "-version`); err == nil {
		t.Error("ParseCommandLine() with unterminated quote expected error")
	}
}
