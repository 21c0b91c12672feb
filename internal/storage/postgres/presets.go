package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/Vasu1712/brayns-remote/internal/models"
	"github.com/Vasu1712/brayns-remote/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS presets (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL UNIQUE,
	kind       TEXT NOT NULL,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PresetStore implements storage.PresetStore using PostgreSQL.
type PresetStore struct {
	db *sql.DB
}

// NewPresetStore opens the database at dataSourceName and creates the
// presets table if needed.
func NewPresetStore(dataSourceName string) (*PresetStore, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Ping the database to verify the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create presets table: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL database for Presets.")
	return &PresetStore{db: db}, nil
}

// SavePreset inserts a preset or, when the name exists, replaces its kind
// and document while keeping its ID.
func (s *PresetStore) SavePreset(ctx context.Context, name string, kind models.PresetKind, document []byte) (*models.Preset, error) {
	p := &models.Preset{Name: name, Kind: kind, Document: append([]byte(nil), document...)}
	query := `
		INSERT INTO presets (id, name, kind, document, created_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (name) DO UPDATE
			SET kind = EXCLUDED.kind, document = EXCLUDED.document, created_at = EXCLUDED.created_at
		RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, uuid.NewString(), name, string(kind), string(document)).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("save preset %q: %w", name, err)
	}
	log.Printf("[Preset] Saved preset in DB: ID=%s, Name=%s, Kind=%s", p.ID, p.Name, p.Kind)
	return p, nil
}

// GetPreset retrieves a preset by name.
func (s *PresetStore) GetPreset(ctx context.Context, name string) (*models.Preset, error) {
	p := &models.Preset{}
	var kind, document string
	query := `SELECT id, name, kind, document, created_at FROM presets WHERE name = $1`
	err := s.db.QueryRowContext(ctx, query, name).Scan(&p.ID, &p.Name, &kind, &document, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrPresetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get preset %q: %w", name, err)
	}
	p.Kind = models.PresetKind(kind)
	p.Document = []byte(document)
	return p, nil
}

// ListPresets returns every preset sorted by name.
func (s *PresetStore) ListPresets(ctx context.Context) ([]*models.Preset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, kind, document, created_at FROM presets ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}
	defer rows.Close()

	presets := []*models.Preset{}
	for rows.Next() {
		p := &models.Preset{}
		var kind, document string
		if err := rows.Scan(&p.ID, &p.Name, &kind, &document, &p.CreatedAt); err != nil {
			log.Printf("Error scanning preset row: %v", err)
			continue
		}
		p.Kind = models.PresetKind(kind)
		p.Document = []byte(document)
		presets = append(presets, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate presets: %w", err)
	}
	return presets, nil
}

// DeletePreset removes a preset by name.
func (s *PresetStore) DeletePreset(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	if n == 0 {
		return storage.ErrPresetNotFound
	}
	log.Printf("[Preset] Deleted preset from DB: Name=%s", name)
	return nil
}

func (s *PresetStore) Close() error { return s.db.Close() }
