// File path: internal/transcript/transcript_test.go
package transcript

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestVideoIDShapes(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":        "dQw4w9WgXcQ",
		"https://www.youtube.com/watch?list=x&v=dQw4w9WgXcQ": "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                       "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/dQw4w9WgXcQ":         "dQw4w9WgXcQ",
	}
	for url, want := range cases {
		got, err := VideoID(url)
		if err != nil {
			t.Fatalf("%s: %v", url, err)
		}
		if got != want {
			t.Fatalf("%s: got %q want %q", url, got, want)
		}
	}
	if _, err := VideoID("https://example.com/video/123"); err == nil {
		t.Fatalf("unrecognized url should fail")
	}
}

func TestDecodeCaptionURL(t *testing.T) {
	raw := `https:\/\/www.youtube.com\/api\/timedtext?v=dQw4w9WgXcQ\u0026lang=en\u0026fmt=srv1`
	got := decodeCaptionURL(raw)
	want := "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en&fmt=srv1"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if strings.Contains(got, `\u0026`) {
		t.Fatalf("decoded URL still contains a JSON escape: %q", got)
	}
}

func TestFetchConcatenatesFragments(t *testing.T) {
	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "dQw4w9WgXcQ" {
			http.NotFound(w, r)
			return
		}
		// Real watch pages JSON-escape the embedded URL: "/" becomes "\/"
		// and "&" becomes "\u0026".
		fmt.Fprintf(w, `<html>"captionTracks":[{"baseUrl":"%s\u0026lang=en"</html>`, strings.ReplaceAll(server.URL+"/timedtext?v=dQw4w9WgXcQ", "/", `\/`))
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") != "dQw4w9WgXcQ" || r.URL.Query().Get("lang") != "en" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<?xml version="1.0"?><transcript><text start="0" dur="2">Hello &amp; welcome</text><text start="2" dur="2">to the channel</text></transcript>`)
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewFetcher(5*time.Second, WithWatchBase(server.URL))
	text, err := fetcher.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if text != "Hello & welcome to the channel" {
		t.Fatalf("unexpected transcript %q", text)
	}
}

func TestFetchNoCaptionsIsDescriptive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>no captions here</html>")
	}))
	defer server.Close()
	fetcher := NewFetcher(5*time.Second, WithWatchBase(server.URL))
	_, err := fetcher.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if err == nil || !strings.Contains(err.Error(), "caption") {
		t.Fatalf("expected descriptive caption error, got %v", err)
	}
}
