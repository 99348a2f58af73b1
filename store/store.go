// Package store persists generated node descriptions between pipeline runs
// so unchanged packages, classes, and methods are not re-summarized. It also
// keeps description embeddings for similar-component lookups.
package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"
)

func init() {
	sqlite_vec.Auto()
}

// Description is a cached summary for one graph node.
type Description struct {
	NodeID      string `json:"node_id"`
	Kind        string `json:"kind"` // package, class, or method
	ContentHash string `json:"content_hash"`
	Description string `json:"description"`
}

// SimilarNode is a nearest-neighbour hit from a description embedding search.
type SimilarNode struct {
	NodeID      string  `json:"node_id"`
	Kind        string  `json:"kind"`
	Description string  `json:"description"`
	Distance    float64 `json:"distance"`
}

// Store wraps the SQLite database backing the description cache.
type Store struct {
	db           *sql.DB
	embeddingDim int
}

// New opens (or creates) a SQLite database at the given path and
// initialises the schema including the sqlite-vec virtual table.
func New(dbPath string, embeddingDim int) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schemaSQL(embeddingDim)); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db, embeddingDim: embeddingDim}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EmbeddingDim returns the configured embedding dimension.
func (s *Store) EmbeddingDim() int {
	return s.embeddingDim
}

// GetDescription returns the cached description for a node when its content
// hash still matches. A miss (absent row or stale hash) is not an error.
func (s *Store) GetDescription(ctx context.Context, nodeID, contentHash string) (string, bool, error) {
	var desc, hash string
	err := s.db.QueryRowContext(ctx,
		"SELECT description, content_hash FROM descriptions WHERE node_id = ?",
		nodeID).Scan(&desc, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("store: reading description for %s: %w", nodeID, err)
	}
	if hash != contentHash {
		return "", false, nil
	}
	return desc, true, nil
}

// PutDescription upserts a description, refreshing the content hash and
// update timestamp.
func (s *Store) PutDescription(ctx context.Context, d Description) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO descriptions (node_id, kind, content_hash, description)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(node_id) DO UPDATE SET
			kind = excluded.kind,
			content_hash = excluded.content_hash,
			description = excluded.description,
			updated_at = CURRENT_TIMESTAMP`,
		d.NodeID, d.Kind, d.ContentHash, d.Description)
	if err != nil {
		return fmt.Errorf("store: upserting description for %s: %w", d.NodeID, err)
	}
	return nil
}

// PutEmbedding stores the description embedding for a node. The node must
// already have a description row.
func (s *Store) PutEmbedding(ctx context.Context, nodeID string, embedding []float32) error {
	if len(embedding) != s.embeddingDim {
		return fmt.Errorf("store: embedding for %s has dim %d, want %d",
			nodeID, len(embedding), s.embeddingDim)
	}

	var rowid int64
	err := s.db.QueryRowContext(ctx,
		"SELECT rowid FROM descriptions WHERE node_id = ?", nodeID).Scan(&rowid)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("store: no description row for %s", nodeID)
	}
	if err != nil {
		return fmt.Errorf("store: resolving rowid for %s: %w", nodeID, err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO vec_descriptions (node_rowid, embedding) VALUES (?, ?)",
		rowid, serializeFloat32(embedding))
	if err != nil {
		return fmt.Errorf("store: inserting embedding for %s: %w", nodeID, err)
	}
	return nil
}

// SimilarNodes performs a KNN search over description embeddings and
// returns the top-k nearest nodes.
func (s *Store) SimilarNodes(ctx context.Context, embedding []float32, k int) ([]SimilarNode, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.node_id, d.kind, d.description, v.distance
		FROM vec_descriptions v
		JOIN descriptions d ON d.rowid = v.node_rowid
		WHERE v.embedding MATCH ? AND k = ?
		ORDER BY v.distance`,
		serializeFloat32(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("store: vector search: %w", err)
	}
	defer rows.Close()

	var results []SimilarNode
	for rows.Next() {
		var n SimilarNode
		if err := rows.Scan(&n.NodeID, &n.Kind, &n.Description, &n.Distance); err != nil {
			return nil, fmt.Errorf("store: scanning search row: %w", err)
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

// CountDescriptions reports how many descriptions are cached.
func (s *Store) CountDescriptions(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM descriptions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("store: counting descriptions: %w", err)
	}
	return count, nil
}

// serializeFloat32 converts a float32 slice to little-endian bytes for sqlite-vec.
func serializeFloat32(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
