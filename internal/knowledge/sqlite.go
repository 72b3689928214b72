// File path: internal/knowledge/sqlite.go
package knowledge

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"scriptforge/internal/common"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS knowledge_sources (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	url TEXT NOT NULL,
	extracted_advice TEXT NOT NULL,
	active INTEGER NOT NULL DEFAULT 1,
	transcript_words INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_knowledge_sources_created
	ON knowledge_sources (created_at DESC);
`

type sqliteRemote struct {
	db *sqlx.DB
}

type sqliteRow struct {
	ID              string `db:"id"`
	Name            string `db:"name"`
	URL             string `db:"url"`
	ExtractedAdvice string `db:"extracted_advice"`
	Active          bool   `db:"active"`
	TranscriptWords int    `db:"transcript_words"`
	CreatedAt       string `db:"created_at"`
}

func (r sqliteRow) toSource() Source {
	created, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return Source{
		ID:              r.ID,
		Name:            r.Name,
		Origin:          r.URL,
		ExtractedAdvice: r.ExtractedAdvice,
		Active:          r.Active,
		TranscriptWords: r.TranscriptWords,
		CreatedAt:       created,
	}
}

// OpenSQLiteRemote opens (and migrates) the local knowledge table. Used when
// no Supabase deployment is configured, keeping single-user installs working
// without any remote service.
func OpenSQLiteRemote(path string) (Remote, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve sqlite path: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", abs)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	common.Logger().Info("knowledge: sqlite remote ready", "path", abs)
	return &sqliteRemote{db: db}, nil
}

func (s *sqliteRemote) Name() string { return "sqlite" }

func (s *sqliteRemote) List(ctx context.Context) ([]Source, error) {
	var rows []sqliteRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT * FROM knowledge_sources ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("select sources: %w", err)
	}
	sources := make([]Source, 0, len(rows))
	for _, row := range rows {
		sources = append(sources, row.toSource())
	}
	return sources, nil
}

func (s *sqliteRemote) Create(ctx context.Context, src Source) (Source, error) {
	src.ID = uuid.NewString()
	if src.CreatedAt.IsZero() {
		src.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO knowledge_sources (id, name, url, extracted_advice, active, transcript_words, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		src.ID, src.Name, src.Origin, src.ExtractedAdvice, src.Active, src.TranscriptWords,
		src.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return Source{}, fmt.Errorf("insert source: %w", err)
	}
	return src, nil
}

func (s *sqliteRemote) Update(ctx context.Context, id string, patch Patch) error {
	var sets []string
	var args []interface{}
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Origin != nil {
		sets = append(sets, "url = ?")
		args = append(args, *patch.Origin)
	}
	if patch.ExtractedAdvice != nil {
		sets = append(sets, "extracted_advice = ?")
		args = append(args, *patch.ExtractedAdvice)
	}
	if patch.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *patch.Active)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	res, err := s.db.ExecContext(ctx,
		fmt.Sprintf("UPDATE knowledge_sources SET %s WHERE id = ?", strings.Join(sets, ", ")), args...)
	if err != nil {
		return fmt.Errorf("update source: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("source %s not found", id)
	}
	return nil
}

func (s *sqliteRemote) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM knowledge_sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete source: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("source %s not found", id)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *sqliteRemote) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
