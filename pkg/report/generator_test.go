package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func sseServer(t *testing.T, chunks []string, check func(r *chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if !req.Stream {
			t.Error("request did not ask for streaming")
		}
		if check != nil {
			check(&req)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		for _, c := range chunks {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", c)
		}
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
}

func TestGenerateAssemblesStream(t *testing.T) {
	srv := sseServer(t, []string{"# Report", "\n", "All good."}, func(req *chatRequest) {
		if len(req.Messages) != 2 {
			t.Fatalf("messages = %d, want system + user", len(req.Messages))
		}
		if req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
			t.Errorf("roles = %s/%s", req.Messages[0].Role, req.Messages[1].Role)
		}
	})
	defer srv.Close()

	g := NewGenerator("test-key", srv.URL, "test-model", zerolog.Nop())

	var streamed []string
	got, err := g.Generate(context.Background(), "You are a reporter.", "Summarize.", func(s string) {
		streamed = append(streamed, s)
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	want := "# Report\nAll good."
	if got != want {
		t.Errorf("report = %q, want %q", got, want)
	}
	if strings.Join(streamed, "") != want {
		t.Errorf("streamed chunks = %v", streamed)
	}
}

func TestGenerateWithoutAPIKey(t *testing.T) {
	g := NewGenerator("", "", "", zerolog.Nop())
	if _, err := g.Generate(context.Background(), "", "prompt", nil); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("err = %v, want ErrNoAPIKey", err)
	}
}

func TestGenerateSurfacesHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	g := NewGenerator("test-key", srv.URL, "test-model", zerolog.Nop())
	_, err := g.Generate(context.Background(), "", "prompt", nil)
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("err = %v, want status 401 error", err)
	}
}

func TestGenerateEmptySystemPromptOmitted(t *testing.T) {
	srv := sseServer(t, []string{"ok"}, func(req *chatRequest) {
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages = %+v, want single user message", req.Messages)
		}
	})
	defer srv.Close()

	g := NewGenerator("test-key", srv.URL, "test-model", zerolog.Nop())
	if _, err := g.Generate(context.Background(), "   ", "prompt", nil); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestPeriodRange(t *testing.T) {
	// 2024-03-15 is a Friday.
	anchor := time.Date(2024, 3, 15, 13, 45, 0, 0, time.Local)

	tests := []struct {
		period   Period
		wantFrom time.Time
		wantTo   time.Time
	}{
		{PeriodDaily,
			time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local),
			time.Date(2024, 3, 16, 0, 0, 0, 0, time.Local)},
		{PeriodWeekly,
			time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local),
			time.Date(2024, 3, 18, 0, 0, 0, 0, time.Local)},
		{PeriodMonthly,
			time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local),
			time.Date(2024, 4, 1, 0, 0, 0, 0, time.Local)},
		{PeriodYearly,
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
			time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			from, to := tt.period.Range(anchor)
			if !from.Equal(tt.wantFrom) || !to.Equal(tt.wantTo) {
				t.Errorf("Range = %v..%v, want %v..%v", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestPeriodRangeWeeklyOnSunday(t *testing.T) {
	// A Sunday belongs to the week that started the previous Monday.
	anchor := time.Date(2024, 3, 17, 9, 0, 0, 0, time.Local)
	from, to := PeriodWeekly.Range(anchor)
	if !from.Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)) {
		t.Errorf("from = %v", from)
	}
	if !to.Equal(time.Date(2024, 3, 18, 0, 0, 0, 0, time.Local)) {
		t.Errorf("to = %v", to)
	}
}
