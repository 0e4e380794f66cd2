package gizichain

import (
	"bytes"
	"path/filepath"
	"testing"
)

func TestRootHelp(t *testing.T) {
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute root help: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected help output")
	}
}

func TestConfigSetGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gizichain.db")

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--db", path, "config", "set", "--base-url", "https://example.test"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	buf.Reset()
	rootCmd.SetArgs([]string{"--db", path, "config", "get", "base_url"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if got := buf.String(); got != "https://example.test\n" {
		t.Fatalf("config get = %q, want %q", got, "https://example.test\n")
	}
	configBaseURL = ""
}

func TestConfigSetRejectsBadPollInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gizichain.db")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"--db", path, "config", "set", "--poll-interval", "twelve"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error for invalid poll interval")
	}
	// Reset the sticky flag for other tests.
	configPollInterval = ""
}

func TestCommandsRequireLogin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gizichain.db")

	for _, args := range [][]string{
		{"inference", "show"},
		{"notifications", "list"},
		{"schedule", "list"},
		{"whoami"},
	} {
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs(append([]string{"--db", path}, args...))
		if err := rootCmd.Execute(); err == nil {
			t.Fatalf("%v: expected not-logged-in error", args)
		}
	}
}
