// File path: internal/transcript/transcript.go

// Package transcript fetches video captions best-effort. Every failure is a
// descriptive error; callers fall back to manual transcript entry.
package transcript

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"scriptforge/internal/common"
	"scriptforge/internal/fault"
)

var idPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?(?:[^#\s]*&)?v=([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtu\.be/([A-Za-z0-9_-]{11})`),
	regexp.MustCompile(`youtube\.com/shorts/([A-Za-z0-9_-]{11})`),
}

var captionTrackPattern = regexp.MustCompile(`"captionTracks":\[\{"baseUrl":"([^"]+)"`)

// VideoID extracts the video identifier from the three supported URL shapes.
func VideoID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	for _, pattern := range idPatterns {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return m[1], nil
		}
	}
	return "", fault.New(fault.KindValidation, "unrecognized video url %q", trimmed)
}

type Fetcher struct {
	httpClient *http.Client
	watchBase  string
}

type Option func(*Fetcher)

// WithWatchBase overrides the watch-page host, for tests.
func WithWatchBase(base string) Option {
	return func(f *Fetcher) {
		f.watchBase = strings.TrimRight(base, "/")
	}
}

func NewFetcher(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	f := &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		watchBase:  "https://www.youtube.com",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch resolves the caption track for a video URL and returns all caption
// fragments concatenated into one text blob.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	logger := common.Logger()
	videoID, err := VideoID(rawURL)
	if err != nil {
		return "", err
	}
	page, err := f.get(ctx, fmt.Sprintf("%s/watch?v=%s", f.watchBase, videoID))
	if err != nil {
		return "", fault.Wrap(fault.KindTransport, fmt.Errorf("load watch page for %s: %w", videoID, err))
	}
	m := captionTrackPattern.FindSubmatch(page)
	if m == nil {
		return "", fault.New(fault.KindTransport, "no caption track found for video %s", videoID)
	}
	captionURL := decodeCaptionURL(string(m[1]))
	body, err := f.get(ctx, captionURL)
	if err != nil {
		return "", fault.Wrap(fault.KindTransport, fmt.Errorf("load captions for %s: %w", videoID, err))
	}
	text, err := joinCaptionFragments(body)
	if err != nil {
		return "", fault.Wrap(fault.KindTransport, fmt.Errorf("parse captions for %s: %w", videoID, err))
	}
	logger.Info("transcript: fetched", "video", videoID, "chars", len(text))
	return text, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept-Language", "en")
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// decodeCaptionURL undoes the JSON escaping the watch page applies to the
// embedded caption URL.
func decodeCaptionURL(raw string) string {
	out := strings.ReplaceAll(raw, `\u0026`, "&")
	out = strings.ReplaceAll(out, `\/`, "/")
	return out
}

type timedText struct {
	Texts []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

func joinCaptionFragments(body []byte) (string, error) {
	var doc timedText
	if err := xml.Unmarshal(body, &doc); err != nil {
		return "", err
	}
	if len(doc.Texts) == 0 {
		return "", fmt.Errorf("caption document empty")
	}
	parts := make([]string, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		fragment := strings.TrimSpace(html.UnescapeString(t.Value))
		if fragment != "" {
			parts = append(parts, fragment)
		}
	}
	return strings.Join(parts, " "), nil
}
