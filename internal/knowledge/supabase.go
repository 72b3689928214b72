// File path: internal/knowledge/supabase.go
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"scriptforge/internal/common"
)

// SupabaseConfig locates the remote table. Key is sent both as the apikey
// header and the bearer token, which is how PostgREST deployments expect
// static credentials.
type SupabaseConfig struct {
	URL     string        `json:"url"`
	Key     string        `json:"key"`
	Table   string        `json:"table"`
	Timeout time.Duration `json:"-"`
}

func (c SupabaseConfig) Merge(override SupabaseConfig) SupabaseConfig {
	result := c
	if strings.TrimSpace(override.URL) != "" {
		result.URL = strings.TrimSpace(override.URL)
	}
	if strings.TrimSpace(override.Key) != "" {
		result.Key = override.Key
	}
	if strings.TrimSpace(override.Table) != "" {
		result.Table = strings.TrimSpace(override.Table)
	}
	if override.Timeout > 0 {
		result.Timeout = override.Timeout
	}
	return result
}

// LoadSupabaseConfig reads the remote table settings from the environment.
// An empty URL means the deployment runs on the local store instead.
func LoadSupabaseConfig() SupabaseConfig {
	cfg := SupabaseConfig{
		URL:     strings.TrimSpace(os.Getenv("SUPABASE_URL")),
		Key:     strings.TrimSpace(os.Getenv("SUPABASE_KEY")),
		Table:   strings.TrimSpace(os.Getenv("SUPABASE_TABLE")),
		Timeout: 30 * time.Second,
	}
	if cfg.Table == "" {
		cfg.Table = "knowledge_sources"
	}
	if raw := strings.TrimSpace(os.Getenv("SUPABASE_TIMEOUT")); raw != "" {
		if dur, err := time.ParseDuration(raw); err == nil {
			cfg.Timeout = dur
		} else {
			common.Logger().Warn("knowledge: invalid SUPABASE_TIMEOUT, using default", "value", raw, "error", err)
		}
	}
	return cfg
}

type supabaseRemote struct {
	httpClient *http.Client
	baseURL    string
	key        string
	table      string
}

// NewSupabaseRemote builds the PostgREST-backed remote. One request per
// operation, no retries; any non-2xx status is an error.
func NewSupabaseRemote(cfg SupabaseConfig) (Remote, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("supabase url required")
	}
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, fmt.Errorf("supabase key required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	common.Logger().Info("knowledge: supabase remote configured", "table", cfg.Table, "timeout", timeout)
	return &supabaseRemote{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		key:        cfg.Key,
		table:      cfg.Table,
	}, nil
}

func (s *supabaseRemote) Name() string { return "supabase" }

// rowID tolerates both primary key shapes PostgREST tables use: bigint
// serials decode as JSON numbers, uuid/text keys as JSON strings.
type rowID string

func (id *rowID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = rowID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("row id: %w", err)
	}
	*id = rowID(n.String())
	return nil
}

type supabaseRow struct {
	ID              rowID  `json:"id,omitempty"`
	Name            string `json:"name"`
	URL             string `json:"url"`
	ExtractedAdvice string `json:"extracted_advice"`
	Active          bool   `json:"active"`
	TranscriptWords int    `json:"transcript_words"`
	CreatedAt       string `json:"created_at,omitempty"`
}

func (r supabaseRow) toSource() Source {
	created, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return Source{
		ID:              string(r.ID),
		Name:            r.Name,
		Origin:          r.URL,
		ExtractedAdvice: r.ExtractedAdvice,
		Active:          r.Active,
		TranscriptWords: r.TranscriptWords,
		CreatedAt:       created,
	}
}

func (s *supabaseRemote) List(ctx context.Context) ([]Source, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	body, err := s.do(ctx, http.MethodGet, query, nil, false)
	if err != nil {
		return nil, err
	}
	var rows []supabaseRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	sources := make([]Source, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, row.toSource())
	}
	return sources, nil
}

func (s *supabaseRemote) Create(ctx context.Context, src Source) (Source, error) {
	row := supabaseRow{
		Name:            src.Name,
		URL:             src.Origin,
		ExtractedAdvice: src.ExtractedAdvice,
		Active:          src.Active,
		TranscriptWords: src.TranscriptWords,
		CreatedAt:       src.CreatedAt.UTC().Format(time.RFC3339),
	}
	payload, err := json.Marshal(row)
	if err != nil {
		return Source{}, fmt.Errorf("encode row: %w", err)
	}
	body, err := s.do(ctx, http.MethodPost, nil, payload, true)
	if err != nil {
		return Source{}, err
	}
	var inserted []supabaseRow
	if err := json.Unmarshal(body, &inserted); err != nil || len(inserted) == 0 {
		return Source{}, fmt.Errorf("insert returned no row")
	}
	return inserted[0].toSource(), nil
}

func (s *supabaseRemote) Update(ctx context.Context, id string, patch Patch) error {
	fields := make(map[string]interface{})
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Origin != nil {
		fields["url"] = *patch.Origin
	}
	if patch.ExtractedAdvice != nil {
		fields["extracted_advice"] = *patch.ExtractedAdvice
	}
	if patch.Active != nil {
		fields["active"] = *patch.Active
	}
	if len(fields) == 0 {
		return nil
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode patch: %w", err)
	}
	query := url.Values{}
	query.Set("id", "eq."+id)
	_, err = s.do(ctx, http.MethodPatch, query, payload, false)
	return err
}

func (s *supabaseRemote) Delete(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	_, err := s.do(ctx, http.MethodDelete, query, nil, false)
	return err
}

func (s *supabaseRemote) do(ctx context.Context, method string, query url.Values, payload []byte, wantRepresentation bool) ([]byte, error) {
	endpoint := fmt.Sprintf("%s/rest/v1/%s", s.baseURL, s.table)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", s.key)
	req.Header.Set("Authorization", "Bearer "+s.key)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if wantRepresentation {
		req.Header.Set("Prefer", "return=representation")
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, s.table, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := strings.TrimSpace(string(body))
		if len(detail) > 200 {
			detail = detail[:200]
		}
		return nil, fmt.Errorf("%s %s: status %d: %s", method, s.table, resp.StatusCode, detail)
	}
	return body, nil
}
