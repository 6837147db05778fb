package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	if got := getVersion(); got == "" {
		t.Error("expected a non-empty version string")
	}
}

func TestGetVersionFromLdflags(t *testing.T) {
	orig := version
	version = "v1.2.3"
	defer func() { version = orig }()

	if got := getVersion(); got != "v1.2.3" {
		t.Errorf("expected ldflags version to win, got %q", got)
	}
}

func TestGetCommitFromLdflags(t *testing.T) {
	orig := commit
	commit = "abc1234"
	defer func() { commit = orig }()

	if got := getCommit(); got != "abc1234" {
		t.Errorf("expected ldflags commit to win, got %q", got)
	}
}

func TestVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "scuwl version") {
		t.Errorf("expected version line, got:\n%s", out)
	}
	if !strings.Contains(out, "commit:") || !strings.Contains(out, "built:") {
		t.Errorf("expected commit and build date lines, got:\n%s", out)
	}
}
