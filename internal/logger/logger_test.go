package logger

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

// capture runs f with os.Stdout swapped for a pipe and returns the last
// JSON line written.
func capture(t *testing.T, f func()) map[string]interface{} {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	f()

	_ = w.Close()
	raw, _ := io.ReadAll(r)
	_ = r.Close()

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) == 0 || lines[0] == "" {
		t.Fatal("nothing logged")
	}
	var payload map[string]interface{}
	last := lines[len(lines)-1]
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, last)
	}
	return payload
}

func TestErrorEventsCarryServiceAndStack(t *testing.T) {
	payload := capture(t, func() {
		log := New("flathive-test")
		log.Error().Stack().Err(errors.New("boom")).Msg("it broke")
	})

	if payload["service"] != "flathive-test" {
		t.Fatalf("service = %v", payload["service"])
	}
	if payload["level"] != "error" {
		t.Fatalf("level = %v", payload["level"])
	}
	if _, ok := payload["stack"]; !ok {
		t.Fatalf("no stack field: %v", payload)
	}
}

func TestInfoEventsStayFlat(t *testing.T) {
	payload := capture(t, func() {
		log := New("flathive-test")
		log.Info().Str("collection", "groceries").Msg("notified")
	})

	if payload["collection"] != "groceries" {
		t.Fatalf("collection = %v", payload["collection"])
	}
	if _, ok := payload["stack"]; ok {
		t.Fatal("info events must not carry stacks")
	}
}
