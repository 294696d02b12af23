// SPDX-License-Identifier: MPL-2.0

package toolchain

import (
	"errors"
	"slices"
	"testing"
)

const (
	java8Output = `openjdk version "1.8.0_372"
OpenJDK Runtime Environment (Temurin)(build 1.8.0_372-b07)
OpenJDK 64-Bit Server VM (Temurin)(build 25.372-b07, mixed mode)
`
	java11Output = `openjdk version "11.0.12" 2021-07-20
OpenJDK Runtime Environment 18.9 (build 11.0.12+7)
OpenJDK 64-Bit Server VM 18.9 (build 11.0.12+7, mixed mode)
`
	java21EAOutput = `openjdk version "21-ea" 2023-09-19
OpenJDK Runtime Environment (build 21-ea+25-2212)
OpenJDK 64-Bit Server VM (build 21-ea+25-2212, mixed mode, sharing)
`
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		output    string
		want      VersionInfo
		wantProps []Property
	}{
		{
			name:   "java 8",
			output: java8Output,
			want:   VersionInfo{Raw: "1.8.0_372", Major: 8, Legacy: true},
			wantProps: []Property{
				{Key: PropertyCompilerSource, Value: "1.8"},
				{Key: PropertyCompilerTarget, Value: "1.8"},
			},
		},
		{
			name:      "java 11",
			output:    java11Output,
			want:      VersionInfo{Raw: "11.0.12", Major: 11},
			wantProps: []Property{{Key: PropertyCompilerRelease, Value: "11"}},
		},
		{
			name:      "java 21 early access",
			output:    java21EAOutput,
			want:      VersionInfo{Raw: "21-ea", Major: 21},
			wantProps: []Property{{Key: PropertyCompilerRelease, Value: "21"}},
		},
		{
			name:      "bare major",
			output:    `java version "17" 2021-09-14 LTS`,
			want:      VersionInfo{Raw: "17", Major: 17},
			wantProps: []Property{{Key: PropertyCompilerRelease, Value: "17"}},
		},
		{
			name:      "with leading noise",
			output:    "Picked up JAVA_TOOL_OPTIONS: -Xmx1g\n" + java11Output,
			want:      VersionInfo{Raw: "11.0.12", Major: 11},
			wantProps: []Property{{Key: PropertyCompilerRelease, Value: "11"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseVersion(tt.output)
			if err != nil {
				t.Fatalf("ParseVersion() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion() = %+v, want %+v", got, tt.want)
			}
			if props := got.Properties(); !slices.Equal(props, tt.wantProps) {
				t.Errorf("Properties() = %v, want %v", props, tt.wantProps)
			}
		})
	}
}

func TestParseVersion_NoToken(t *testing.T) {
	t.Parallel()

	for _, output := range []string{"", "bash: java: command not found", `version "abc"`} {
		_, err := ParseVersion(output)
		if !errors.Is(err, ErrToolchainDetection) {
			t.Errorf("ParseVersion(%q) error = %v, want ErrToolchainDetection", output, err)
		}
	}
}
