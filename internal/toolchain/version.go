// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// PropertyCompilerSource is set for legacy (1.x) toolchains.
	PropertyCompilerSource = "maven.compiler.source"
	// PropertyCompilerTarget is set for legacy (1.x) toolchains.
	PropertyCompilerTarget = "maven.compiler.target"
	// PropertyCompilerRelease is set for toolchains from 9 onwards.
	PropertyCompilerRelease = "maven.compiler.release"
)

// ErrToolchainDetection is the sentinel error wrapped by DetectionError.
var ErrToolchainDetection = errors.New("toolchain detection failed")

// versionTokenPattern matches the quoted version in `java -version` output:
// "1.8.0_372", "11.0.12", "17", "21-ea".
var versionTokenPattern = regexp.MustCompile(`"(\d+(?:\.\d+)*(?:_\d+)?(?:-[0-9A-Za-z.]+)?)"`)

type (
	// VersionInfo is a classified toolchain version.
	VersionInfo struct {
		// Raw is the quoted token as reported, without quotes.
		Raw string
		// Major is the feature release number (8 for "1.8.0_372", 21 for "21-ea").
		Major int
		// Legacy is true for the "1.x" numbering scheme.
		Legacy bool
	}

	// Property is a build property derived from the toolchain version.
	Property struct {
		Key   string
		Value string
	}

	// DetectionError is returned when no version could be obtained.
	// It wraps ErrToolchainDetection for errors.Is() compatibility.
	DetectionError struct {
		Command []string
		Reason  string
		Err     error
	}
)

// Error implements the error interface.
func (e *DetectionError) Error() string {
	var msg strings.Builder
	msg.WriteString("toolchain detection failed")
	if len(e.Command) > 0 {
		fmt.Fprintf(&msg, " (%s)", strings.Join(e.Command, " "))
	}
	if e.Reason != "" {
		msg.WriteString(": ")
		msg.WriteString(e.Reason)
	}
	if e.Err != nil {
		msg.WriteString(": ")
		msg.WriteString(e.Err.Error())
	}
	return msg.String()
}

// Unwrap returns ErrToolchainDetection so callers can use errors.Is.
func (e *DetectionError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrToolchainDetection, e.Err}
	}
	return []error{ErrToolchainDetection}
}

// ParseVersion extracts the first quoted version token from output.
func ParseVersion(output string) (VersionInfo, error) {
	m := versionTokenPattern.FindStringSubmatch(output)
	if m == nil {
		return VersionInfo{}, &DetectionError{Reason: "no version token in output"}
	}
	raw := m[1]

	// Strip the pre-release suffix ("-ea") and the update suffix ("_372").
	numeric, _, _ := strings.Cut(raw, "-")
	numeric, _, _ = strings.Cut(numeric, "_")
	fields := strings.Split(numeric, ".")

	first, err := strconv.Atoi(fields[0])
	if err != nil {
		return VersionInfo{}, &DetectionError{Reason: fmt.Sprintf("unparseable version %q", raw), Err: err}
	}

	if first == 1 && len(fields) > 1 {
		minor, err := strconv.Atoi(fields[1])
		if err != nil {
			return VersionInfo{}, &DetectionError{Reason: fmt.Sprintf("unparseable version %q", raw), Err: err}
		}
		return VersionInfo{Raw: raw, Major: minor, Legacy: true}, nil
	}

	return VersionInfo{Raw: raw, Major: first}, nil
}

// Properties returns the compiler properties for the version, in write order.
func (v VersionInfo) Properties() []Property {
	if v.Legacy {
		level := "1." + strconv.Itoa(v.Major)
		return []Property{
			{Key: PropertyCompilerSource, Value: level},
			{Key: PropertyCompilerTarget, Value: level},
		}
	}
	return []Property{{Key: PropertyCompilerRelease, Value: strconv.Itoa(v.Major)}}
}

// String returns the raw version token.
func (v VersionInfo) String() string { return v.Raw }
