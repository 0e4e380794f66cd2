package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"path/filepath"
	"testing"
)

func buildGizichainBinary(t *testing.T) string {
	t.Helper()
	repoRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("resolve repo root: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "gizichain")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build gizichain binary: %v\n%s", err, string(out))
	}
	return binPath
}

func runGizichain(t *testing.T, binPath, dbPath, baseURL string, args ...string) (string, string, int) {
	t.Helper()
	allArgs := append([]string{"--db", dbPath, "--base-url", baseURL}, args...)
	cmd := exec.Command(binPath, allArgs...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.String(), stderr.String(), 0
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("run gizichain command: %v", err)
	}
	return stdout.String(), stderr.String(), exitErr.ExitCode()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func envelope(data any) map[string]any {
	return map[string]any{"status": "success", "message": "", "data": data}
}

// fakeBackend is a minimal GiziChain API double. Handlers can be swapped per
// test via the mux.
func fakeBackend(t *testing.T) (*httptest.Server, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mux
}

func loginAs(t *testing.T, binPath, dbPath, baseURL string) {
	t.Helper()
	_, stderr, exit := runGizichain(t, binPath, dbPath, baseURL,
		"login", "--email", "ibu@example.test", "--password", "rahasia")
	if exit != 0 {
		t.Fatalf("login failed: exit=%d stderr=%s", exit, stderr)
	}
}

func stubLogin(mux *http.ServeMux, motherID string) {
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, envelope(map[string]any{
			"token": "test-token",
			"user": map[string]any{
				"id":       "7",
				"name":     "Siti",
				"email":    "ibu@example.test",
				"motherId": motherID,
			},
		}))
	})
}
