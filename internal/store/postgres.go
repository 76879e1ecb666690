package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"waterBuddyAPI/internal/user"
)

// Postgres keeps one JSONB document per user in a key-value table, the
// direct descendant of the original's user_data.json blob.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// InitSchema creates the backing table. No migration logic beyond this: the
// record itself carries a version and is normalized at load time.
func (p *Postgres) InitSchema(ctx context.Context) error {
	_, err := p.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS users (
		username   TEXT PRIMARY KEY,
		record     JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func (p *Postgres) Create(ctx context.Context, record *user.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	tag, err := p.db.Exec(ctx, `
		INSERT INTO users (username, record)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING`,
		record.Username, raw)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyExists
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, username string) (*user.Record, error) {
	var raw []byte
	err := p.db.QueryRow(ctx,
		`SELECT record FROM users WHERE username = $1`, username).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	record := &user.Record{}
	if err := json.Unmarshal(raw, record); err != nil {
		// Corrupt document: start the user over with an empty record rather
		// than failing the request (accepted data loss).
		log.Printf("corrupt record for %s, resetting: %v", username, err)
		record = &user.Record{Username: username}
	}
	record.Username = username
	record.Normalize()
	return record, nil
}

func (p *Postgres) Save(ctx context.Context, record *user.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	tag, err := p.db.Exec(ctx, `
		UPDATE users SET record = $2, updated_at = NOW()
		WHERE username = $1`,
		record.Username, raw)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := p.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}
