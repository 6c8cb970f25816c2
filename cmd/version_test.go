package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/schemadelta/schemadelta/internal/version"
)

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs([]string{"version"})

	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	output := strings.TrimSpace(buf.String())
	if output != version.String() {
		t.Errorf("version output = %q, want %q", output, version.String())
	}
	if !strings.HasPrefix(output, "schemadelta v"+version.Version()) {
		t.Errorf("expected output to start with the release version, got: %s", output)
	}
}
