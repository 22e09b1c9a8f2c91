// Package main tests for the FlowSpec CLI application
package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name      string
		version   string
		commit    string
		buildTime string
		want      string
	}{
		{
			name:      "version with dev defaults",
			version:   "dev",
			commit:    "unknown",
			buildTime: "unknown",
			want:      "FlowSpec dev (commit: unknown, built: unknown)\n",
		},
		{
			name:      "version with custom values",
			version:   "v1.0.0",
			commit:    "abc123",
			buildTime: "2026-01-01",
			want:      "FlowSpec v1.0.0 (commit: abc123, built: 2026-01-01)\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVersion := Version
			oldCommit := Commit
			oldBuildTime := BuildTime

			Version = tt.version
			Commit = tt.commit
			BuildTime = tt.buildTime

			output, err := executeCommand("version")

			Version = oldVersion
			Commit = oldCommit
			BuildTime = oldBuildTime

			require.NoError(t, err)
			assert.Equal(t, tt.want, output)
		})
	}
}

func TestVersionVariables(t *testing.T) {
	assert.NotEmpty(t, Version)
	assert.NotEmpty(t, Commit)
	assert.NotEmpty(t, BuildTime)
}

func TestVersionOutputFormat(t *testing.T) {
	output, err := executeCommand("version")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(output, "FlowSpec "))
	assert.Contains(t, output, "commit:")
	assert.Contains(t, output, "built:")
}

func TestRootHelpListsVet(t *testing.T) {
	output, err := executeCommand("--help")
	require.NoError(t, err)

	assert.Contains(t, output, "vet")
	assert.Contains(t, output, "version")
}
