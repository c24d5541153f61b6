package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProbeHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer srv.Close()

	apiFlag = srv.URL
	healthy, body, err := probeHealth()
	if err != nil {
		t.Fatalf("probeHealth: %v", err)
	}
	if !healthy {
		t.Fatalf("expected healthy, body %s", body)
	}
}

func TestProbeHealthUnhealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
	}))
	defer srv.Close()

	apiFlag = srv.URL
	healthy, _, err := probeHealth()
	if err == nil {
		t.Fatal("expected an error for a 503 response")
	}
	if healthy {
		t.Fatal("expected unhealthy")
	}
}

func TestStreamEvents(t *testing.T) {
	in := strings.NewReader("event: snapshot\ndata: {\"items\":[]}\n\nevent: snapshot\ndata: {\"items\":[1]}\n\n")
	var out bytes.Buffer
	if err := streamEvents(in, &out); err != nil {
		t.Fatalf("streamEvents: %v", err)
	}
	got := out.String()
	for _, want := range []string{"event: snapshot", `data: {"items":[]}`, `data: {"items":[1]}`} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintExpensesFormatsRupees(t *testing.T) {
	body := []byte(`{"items":[{"name":"Coffee","amount":150,"category":"Food","paidBy":"Ria"}],"count":1}`)
	var out bytes.Buffer
	if err := printExpenses(body, &out); err != nil {
		t.Fatalf("printExpenses: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "₹150.00") {
		t.Fatalf("amount not formatted: %s", got)
	}
	if !strings.Contains(got, "Food") || !strings.Contains(got, "Ria") {
		t.Fatalf("missing fields: %s", got)
	}
}

func TestValidCollection(t *testing.T) {
	if err := validCollection("groceries"); err != nil {
		t.Fatalf("groceries should be valid: %v", err)
	}
	if err := validCollection("gremlins"); err == nil {
		t.Fatal("gremlins should be rejected")
	}
}
