package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"arrangio/internal/partition"
	"arrangio/internal/render"
)

const songsBody = `{"groups": 3, "songs": [
  "song01:55s", "song02:3m41s", "song03:5m37s",
  "song04:4m51s", "song05:5m54s", "song06:5m16s",
  "song07:3m45s", {"label": "song08", "seconds": 281}, {"label": "song09", "duration": "2m50s"}
]}`

func testHandler(t *testing.T) lambdaHandler {
	t.Helper()
	solver, err := partition.NewSolver(partition.Config{Workers: 2})
	if err != nil {
		t.Fatalf("NewSolver: %v", err)
	}
	return newHandler(solver, slog.New(slog.DiscardHandler))
}

// distinctSongs builds a body of n songs with pairwise different durations.
func distinctSongs(groups, n int) string {
	songs := make([]string, n)
	for i := range songs {
		songs[i] = fmt.Sprintf(`"s%02d:%ds"`, i, i+1)
	}
	return fmt.Sprintf(`{"groups": %d, "songs": [%s]}`, groups, strings.Join(songs, ","))
}

func invoke(t *testing.T, ctx context.Context, req events.LambdaFunctionURLRequest) events.LambdaFunctionURLResponse {
	t.Helper()
	resp, err := testHandler(t)(ctx, req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := resp.Headers["Content-Type"]; got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	return resp
}

func decodeDocument(t *testing.T, resp events.LambdaFunctionURLResponse) render.Document {
	t.Helper()
	if resp.StatusCode != 200 {
		t.Fatalf("status %d, want 200: %s", resp.StatusCode, resp.Body)
	}
	var doc render.Document
	if err := json.Unmarshal([]byte(resp.Body), &doc); err != nil {
		t.Fatalf("decode %s: %v", resp.Body, err)
	}
	return doc
}

func TestHandlerArranges(t *testing.T) {
	doc := decodeDocument(t, invoke(t, context.Background(), events.LambdaFunctionURLRequest{Body: songsBody}))
	if doc.Difference != 20 {
		t.Errorf("difference %d, want 20", doc.Difference)
	}
	if len(doc.Groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(doc.Groups))
	}
	var songs int
	for _, g := range doc.Groups {
		songs += len(g.Songs)
	}
	if songs != 9 {
		t.Errorf("got %d songs, want 9", songs)
	}
}

func TestHandlerDefaultGroups(t *testing.T) {
	doc := decodeDocument(t, invoke(t, context.Background(), events.LambdaFunctionURLRequest{
		Body: `{"songs": ["a:10s", "b:4s", "c:6s"]}`,
	}))
	if doc.Difference != 0 || len(doc.Groups) != 2 {
		t.Errorf("got difference %d over %d groups, want 0 over 2", doc.Difference, len(doc.Groups))
	}
}

func TestHandlerBase64(t *testing.T) {
	resp := invoke(t, context.Background(), events.LambdaFunctionURLRequest{
		Body:            base64.StdEncoding.EncodeToString([]byte(songsBody)),
		IsBase64Encoded: true,
	})
	if resp.StatusCode != 200 {
		t.Errorf("status %d, want 200: %s", resp.StatusCode, resp.Body)
	}
}

// Requests right at the search budget must complete well within a Lambda
// timeout.
func TestHandlerBudgetEdge(t *testing.T) {
	for _, tt := range []struct{ groups, songs int }{
		{2, 18},
		{4, 9},
		{8, 6},
		{16, 4},
	} {
		t.Run(fmt.Sprintf("%dx%d", tt.groups, tt.songs), func(t *testing.T) {
			if !withinSearchBudget(tt.groups, tt.songs) {
				t.Fatalf("%d songs in %d groups should fit the budget", tt.songs, tt.groups)
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			start := time.Now()
			doc := decodeDocument(t, invoke(t, ctx, events.LambdaFunctionURLRequest{Body: distinctSongs(tt.groups, tt.songs)}))
			if len(doc.Groups) != tt.groups {
				t.Errorf("got %d groups, want %d", len(doc.Groups), tt.groups)
			}
			t.Logf("%d songs in %d groups: %v", tt.songs, tt.groups, time.Since(start))
		})
	}
}

func TestWithinSearchBudget(t *testing.T) {
	tests := []struct {
		groups, songs int
		want          bool
	}{
		{1, maxRequestSongs, true},
		{2, 18, true},
		{2, 19, false},
		{3, 11, true},
		{3, 12, false},
		{4, 9, true},
		{4, 10, false},
		{16, 4, true},
		{16, 5, false},
	}
	for _, tt := range tests {
		if got := withinSearchBudget(tt.groups, tt.songs); got != tt.want {
			t.Errorf("withinSearchBudget(%d, %d) = %v, want %v", tt.groups, tt.songs, got, tt.want)
		}
	}
}

func TestHandlerRejects(t *testing.T) {
	tests := []struct {
		name string
		req  events.LambdaFunctionURLRequest
		want string
	}{
		{"invalid json", events.LambdaFunctionURLRequest{Body: `{"songs": [`}, "invalid JSON"},
		{"invalid base64", events.LambdaFunctionURLRequest{Body: "%%%", IsBase64Encoded: true}, "invalid base64"},
		{"no songs", events.LambdaFunctionURLRequest{Body: `{"groups": 2}`}, "missing songs"},
		{"empty songs", events.LambdaFunctionURLRequest{Body: `{"songs": []}`}, "missing songs"},
		{"bad song", events.LambdaFunctionURLRequest{Body: `{"songs": ["a:1m"]}`}, "invalid song information"},
		{"zero groups", events.LambdaFunctionURLRequest{Body: `{"groups": 0, "songs": ["a:1s"]}`}, "groups"},
		{"fractional groups", events.LambdaFunctionURLRequest{Body: `{"groups": 2.5, "songs": ["a:1s"]}`}, "groups must be an integer"},
		{"groups not a number", events.LambdaFunctionURLRequest{Body: `{"groups": "2", "songs": ["a:1s"]}`}, "groups"},
		{"not an object", events.LambdaFunctionURLRequest{Body: `["a:1s"]`}, "object"},
		{"too many songs", events.LambdaFunctionURLRequest{Body: distinctSongs(1, maxRequestSongs+1)}, "too many songs"},
		{"too many groups", events.LambdaFunctionURLRequest{Body: `{"groups": 100000000000, "songs": ["a:1s"]}`}, "too many groups"},
		{"groups above cap", events.LambdaFunctionURLRequest{Body: distinctSongs(maxRequestGroups+1, 1)}, "too many groups"},
		{"search too large", events.LambdaFunctionURLRequest{Body: distinctSongs(4, 20)}, "search too large"},
		{"search too large default groups", events.LambdaFunctionURLRequest{Body: `{"songs": [` + strings.Repeat(`"a:1s",`, 18) + `"a:1s"]}`}, "search too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := invoke(t, context.Background(), tt.req)
			if resp.StatusCode != 400 {
				t.Errorf("status %d, want 400: %s", resp.StatusCode, resp.Body)
			}
			var body map[string]string
			if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
				t.Fatalf("decode %s: %v", resp.Body, err)
			}
			if !strings.Contains(body["error"], tt.want) {
				t.Errorf("error %q does not mention %q", body["error"], tt.want)
			}
		})
	}
}

func TestHandlerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := invoke(t, ctx, events.LambdaFunctionURLRequest{Body: songsBody})
	if resp.StatusCode != 500 {
		t.Errorf("status %d, want 500", resp.StatusCode)
	}
	if resp.Body != `{"error":"arrangement failed"}` {
		t.Errorf("body %s", resp.Body)
	}
}
