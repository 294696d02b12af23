// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"

	"mvdan.cc/sh/v3/shell"
)

// DefaultCommandLine reports the version of the java on PATH.
const DefaultCommandLine = "java -version"

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// This allows injection of mock implementations for testing.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Detector runs the version-reporting command and parses its output.
	Detector struct {
		command     []string
		execCommand ExecCommandFunc
	}

	// Option configures a Detector.
	Option func(*Detector)
)

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) Option {
	return func(d *Detector) {
		d.execCommand = fn
	}
}

// WithCommand sets the command and its arguments.
func WithCommand(argv ...string) Option {
	return func(d *Detector) {
		d.command = argv
	}
}

// NewDetector creates a detector running DefaultCommandLine.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		command:     []string{"java", "-version"},
		execCommand: exec.CommandContext,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ParseCommandLine splits a configured command line into argv using shell
// quoting rules. Environment references such as $JAVA_HOME are expanded.
func ParseCommandLine(line string) ([]string, error) {
	argv, err := shell.Fields(line, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("invalid toolchain command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("invalid toolchain command %q: empty", line)
	}
	return argv, nil
}

// Command returns the argv the detector runs.
func (d *Detector) Command() []string {
	return append([]string(nil), d.command...)
}

// Detect runs the command with stdout and stderr merged, waits for it to exit
// and parses the captured text. No timeout is applied beyond ctx.
func (d *Detector) Detect(ctx context.Context) (VersionInfo, error) {
	if len(d.command) == 0 {
		return VersionInfo{}, &DetectionError{Reason: "no command configured"}
	}

	cmd := d.execCommand(ctx, d.command[0], d.command[1:]...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	runErr := cmd.Run()

	info, parseErr := ParseVersion(out.String())
	if parseErr == nil {
		return info, nil
	}
	if runErr != nil {
		return VersionInfo{}, &DetectionError{Command: d.Command(), Err: runErr}
	}
	return VersionInfo{}, &DetectionError{Command: d.Command(), Reason: "no version token in output"}
}
