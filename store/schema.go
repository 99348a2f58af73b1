package store

import "fmt"

// schemaSQL returns the DDL for the description cache. embeddingDim
// controls the vec0 virtual table dimension.
func schemaSQL(embeddingDim int) string {
	return fmt.Sprintf(`
-- Generated descriptions, keyed by graph node id. content_hash is the hash
-- of the material the description was generated from; a changed hash
-- invalidates the cached entry.
CREATE TABLE IF NOT EXISTS descriptions (
    node_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    content_hash TEXT NOT NULL,
    description TEXT NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Description embeddings via sqlite-vec, keyed by the descriptions rowid.
CREATE VIRTUAL TABLE IF NOT EXISTS vec_descriptions USING vec0(
    node_rowid INTEGER PRIMARY KEY,
    embedding float[%d]
);

CREATE INDEX IF NOT EXISTS idx_descriptions_kind ON descriptions(kind);
`, embeddingDim)
}
