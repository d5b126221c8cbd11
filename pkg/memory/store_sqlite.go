package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/solaceapp/solace/pkg/emotion"
)

// SQLiteStore is the durable backing for conversation history, long-term
// memory snippets, the emotion trail, and the response cache.
type SQLiteStore struct {
	db       *sql.DB
	embedder Embedder
}

// NewSQLiteStore creates/opens the database at path.
func NewSQLiteStore(path string, embedder Embedder) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Single-process store. One shared connection avoids writer lock
	// contention with SQLite under concurrent goroutines.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if embedder == nil {
		embedder = NewChargramEmbedder()
	}

	store := &SQLiteStore{db: db, embedder: embedder}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init() error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`PRAGMA temp_store=MEMORY;`,
		`PRAGMA busy_timeout=5000;`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL DEFAULT '',
			created_at_ms INTEGER NOT NULL,
			updated_at_ms INTEGER NOT NULL,
			turn_count INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS turns (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL DEFAULT '',
			session_id TEXT NOT NULL,
			message TEXT NOT NULL,
			response TEXT NOT NULL,
			personality TEXT NOT NULL DEFAULT '',
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS turns_session_idx ON turns(session_id, created_at_ms DESC);`,
		`CREATE INDEX IF NOT EXISTS turns_owner_idx ON turns(owner_id, created_at_ms DESC);`,
		`CREATE TABLE IF NOT EXISTS memory_snippets (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			content TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			created_at_ms INTEGER NOT NULL,
			last_seen_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS memory_snippets_owner_idx ON memory_snippets(owner_id, last_seen_at_ms DESC);`,
		`CREATE TABLE IF NOT EXISTS snippet_embeddings (
			snippet_id TEXT PRIMARY KEY,
			model TEXT NOT NULL,
			vector_json TEXT NOT NULL,
			updated_at_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS emotion_records (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			intensity TEXT NOT NULL,
			confidence REAL NOT NULL,
			created_at_ms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS emotion_records_owner_idx ON emotion_records(owner_id, created_at_ms DESC);`,
		`CREATE TABLE IF NOT EXISTS response_cache (
			cache_key TEXT NOT NULL,
			personality TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at_ms INTEGER NOT NULL,
			PRIMARY KEY(cache_key, personality)
		);`,
		`CREATE INDEX IF NOT EXISTS response_cache_age_idx ON response_cache(created_at_ms);`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("init sqlite schema failed on %q: %w", trimSQL(stmt), err)
		}
	}
	return nil
}

func trimSQL(sql string) string {
	line := strings.TrimSpace(sql)
	if len(line) > 96 {
		return line[:96] + "..."
	}
	return line
}

func nowMS() int64 { return time.Now().UnixMilli() }

func encodeVector(vec []float32) string {
	if len(vec) == 0 {
		return "[]"
	}
	b, err := json.Marshal(vec)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeVector(raw string) []float32 {
	if raw == "" {
		return nil
	}
	out := []float32{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// SaveTurn persists one exchange, creating the session row on first use.
func (s *SQLiteStore) SaveTurn(ctx context.Context, turn Turn) (Turn, error) {
	if strings.TrimSpace(turn.SessionID) == "" {
		return Turn{}, fmt.Errorf("save turn: empty session_id")
	}
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAtMS == 0 {
		turn.CreatedAtMS = nowMS()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Turn{}, fmt.Errorf("save turn begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO sessions(session_id, owner_id, created_at_ms, updated_at_ms, turn_count)
VALUES(?, ?, ?, ?, 0)
ON CONFLICT(session_id) DO UPDATE SET
	owner_id = CASE WHEN sessions.owner_id = '' THEN excluded.owner_id ELSE sessions.owner_id END,
	updated_at_ms = excluded.updated_at_ms`,
		turn.SessionID, turn.OwnerID, turn.CreatedAtMS, turn.CreatedAtMS); err != nil {
		return Turn{}, fmt.Errorf("save turn ensure session: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO turns(id, owner_id, session_id, message, response, personality, created_at_ms)
VALUES(?, ?, ?, ?, ?, ?, ?)`,
		turn.ID, turn.OwnerID, turn.SessionID, turn.Message, turn.Response, turn.Personality, turn.CreatedAtMS); err != nil {
		return Turn{}, fmt.Errorf("save turn insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
UPDATE sessions SET updated_at_ms = ?, turn_count = turn_count + 1 WHERE session_id = ?`,
		turn.CreatedAtMS, turn.SessionID); err != nil {
		return Turn{}, fmt.Errorf("save turn update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Turn{}, fmt.Errorf("save turn commit: %w", err)
	}
	return turn, nil
}

// RecentTurns returns the latest turns for a session in chronological order.
func (s *SQLiteStore) RecentTurns(ctx context.Context, sessionID string, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 1
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, owner_id, session_id, message, response, personality, created_at_ms
FROM turns
WHERE session_id = ?
ORDER BY created_at_ms DESC
LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent turns: %w", err)
	}
	defer rows.Close()

	out := make([]Turn, 0, limit)
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.SessionID, &t.Message, &t.Response, &t.Personality, &t.CreatedAtMS); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// AddSnippet stores a long-term memory fragment with its embedding.
func (s *SQLiteStore) AddSnippet(ctx context.Context, ownerID, source, content string) (Snippet, error) {
	content = strings.TrimSpace(content)
	if ownerID == "" || content == "" {
		return Snippet{}, fmt.Errorf("add snippet: empty owner or content")
	}

	sn := Snippet{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Content:     content,
		Source:      source,
		CreatedAtMS: nowMS(),
	}
	sn.LastSeenMS = sn.CreatedAtMS

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Snippet{}, fmt.Errorf("add snippet begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
INSERT INTO memory_snippets(id, owner_id, content, source, created_at_ms, last_seen_at_ms)
VALUES(?, ?, ?, ?, ?, ?)`,
		sn.ID, sn.OwnerID, sn.Content, sn.Source, sn.CreatedAtMS, sn.LastSeenMS); err != nil {
		return Snippet{}, fmt.Errorf("add snippet insert: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
INSERT INTO snippet_embeddings(snippet_id, model, vector_json, updated_at_ms)
VALUES(?, ?, ?, ?)
ON CONFLICT(snippet_id) DO UPDATE SET
	model = excluded.model,
	vector_json = excluded.vector_json,
	updated_at_ms = excluded.updated_at_ms`,
		sn.ID, s.embedder.ModelID(), encodeVector(s.embedder.Embed(content)), sn.CreatedAtMS); err != nil {
		return Snippet{}, fmt.Errorf("add snippet embedding: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Snippet{}, fmt.Errorf("add snippet commit: %w", err)
	}
	return sn, nil
}

// SearchSnippets recalls the owner's snippets most similar to query, most
// relevant first. candidateLimit bounds how many recent snippets are scored.
func (s *SQLiteStore) SearchSnippets(ctx context.Context, ownerID, query string, topK, candidateLimit int) ([]Snippet, error) {
	if ownerID == "" || topK <= 0 {
		return nil, nil
	}
	if candidateLimit <= 0 {
		candidateLimit = 80
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT m.id, m.owner_id, m.content, m.source, m.created_at_ms, m.last_seen_at_ms, COALESCE(e.vector_json, '')
FROM memory_snippets m
LEFT JOIN snippet_embeddings e ON e.snippet_id = m.id
WHERE m.owner_id = ?
ORDER BY m.last_seen_at_ms DESC
LIMIT ?`, ownerID, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("search snippets: %w", err)
	}
	defer rows.Close()

	candidates := []Snippet{}
	vectors := map[string][]float32{}
	for rows.Next() {
		var sn Snippet
		var raw string
		if err := rows.Scan(&sn.ID, &sn.OwnerID, &sn.Content, &sn.Source, &sn.CreatedAtMS, &sn.LastSeenMS, &raw); err != nil {
			return nil, fmt.Errorf("scan snippet: %w", err)
		}
		candidates = append(candidates, sn)
		if vec := decodeVector(raw); vec != nil {
			vectors[sn.ID] = vec
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snippets: %w", err)
	}

	ranked := rankSnippets(s.embedder.Embed(query), candidates, vectors, nowMS(), topK)

	now := nowMS()
	for _, sn := range ranked {
		_, _ = s.db.ExecContext(ctx, `UPDATE memory_snippets SET last_seen_at_ms = ? WHERE id = ?`, now, sn.ID)
	}
	return ranked, nil
}

// InsertEmotionRecord appends one classification to the owner's trail.
func (s *SQLiteStore) InsertEmotionRecord(ctx context.Context, rec emotion.Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAtMS == 0 {
		rec.CreatedAtMS = nowMS()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO emotion_records(id, owner_id, source, category, intensity, confidence, created_at_ms)
VALUES(?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OwnerID, rec.Source, string(rec.Category), string(rec.Intensity), rec.Confidence, rec.CreatedAtMS)
	if err != nil {
		return fmt.Errorf("insert emotion record: %w", err)
	}
	return nil
}

// SummarizeEmotions counts recorded categories for an owner since the cutoff.
func (s *SQLiteStore) SummarizeEmotions(ctx context.Context, ownerID string, sinceMS int64) (map[emotion.Category]int, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT category, COUNT(*)
FROM emotion_records
WHERE owner_id = ? AND created_at_ms >= ?
GROUP BY category`, ownerID, sinceMS)
	if err != nil {
		return nil, fmt.Errorf("summarize emotions: %w", err)
	}
	defer rows.Close()

	out := map[emotion.Category]int{}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan emotion summary: %w", err)
		}
		out[emotion.Category(category)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emotion summary: %w", err)
	}
	return out, nil
}

// GetCachedResponse returns the stored answer for (key, personality), or
// ErrNotFound when absent.
func (s *SQLiteStore) GetCachedResponse(ctx context.Context, key, personality string) (CachedResponse, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT cache_key, personality, response, created_at_ms
FROM response_cache
WHERE cache_key = ? AND personality = ?`, key, personality)

	var out CachedResponse
	if err := row.Scan(&out.Key, &out.Personality, &out.Response, &out.CreatedAtMS); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CachedResponse{}, ErrNotFound
		}
		return CachedResponse{}, fmt.Errorf("get cached response: %w", err)
	}
	return out, nil
}

// PutCachedResponse upserts one answer keyed by (key, personality).
func (s *SQLiteStore) PutCachedResponse(ctx context.Context, key, personality, response string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO response_cache(cache_key, personality, response, created_at_ms)
VALUES(?, ?, ?, ?)
ON CONFLICT(cache_key, personality) DO UPDATE SET
	response = excluded.response,
	created_at_ms = excluded.created_at_ms`, key, personality, response, nowMS())
	if err != nil {
		return fmt.Errorf("put cached response: %w", err)
	}
	return nil
}

// PurgeExpiredCache deletes cache rows created before the cutoff and reports
// how many were removed.
func (s *SQLiteStore) PurgeExpiredCache(ctx context.Context, cutoffMS int64) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM response_cache WHERE created_at_ms < ?`, cutoffMS)
	if err != nil {
		return 0, fmt.Errorf("purge expired cache: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}
