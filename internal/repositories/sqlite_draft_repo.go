package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/google/uuid"
)

// SQLiteDraftRepo is an embedded draft store for single-node and local setups.
type SQLiteDraftRepo struct {
	db *sql.DB
}

func NewSQLiteDraftRepo(db *sql.DB) *SQLiteDraftRepo {
	return &SQLiteDraftRepo{db: db}
}

const sqliteDraftSchema = `
CREATE TABLE IF NOT EXISTS campaign_drafts (
	id TEXT PRIMARY KEY,
	owner_user_id TEXT NOT NULL,
	status TEXT NOT NULL,
	current_step INTEGER NOT NULL,
	data TEXT NOT NULL,
	published_campaign_id TEXT,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaign_drafts_owner ON campaign_drafts (owner_user_id, updated_at);
`

func (r *SQLiteDraftRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, sqliteDraftSchema)
	return err
}

func (r *SQLiteDraftRepo) SaveDraft(ctx context.Context, rec *models.DraftRecord) error {
	data, err := json.Marshal(rec.Draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	var published sql.NullString
	if rec.PublishedCampaignID != nil {
		published = sql.NullString{String: rec.PublishedCampaignID.String(), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO campaign_drafts (id, owner_user_id, status, current_step, data, published_campaign_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			current_step = excluded.current_step,
			data = excluded.data,
			published_campaign_id = excluded.published_campaign_id,
			updated_at = excluded.updated_at
	`, rec.ID.String(), rec.OwnerUserID.String(), rec.Status, rec.CurrentStep, string(data), published,
		rec.CreatedAt.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return err
	}
	rec.UpdatedAt = now
	return nil
}

func (r *SQLiteDraftRepo) GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftRecord, error) {
	var (
		rec                  models.DraftRecord
		rawID, rawOwner      string
		data                 string
		published            sql.NullString
		createdAt, updatedAt string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, owner_user_id, status, current_step, data, published_campaign_id, created_at, updated_at
		FROM campaign_drafts WHERE id = ?
	`, id.String()).Scan(&rawID, &rawOwner, &rec.Status, &rec.CurrentStep, &data, &published, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if rec.ID, err = uuid.Parse(rawID); err != nil {
		return nil, err
	}
	if rec.OwnerUserID, err = uuid.Parse(rawOwner); err != nil {
		return nil, err
	}
	if published.Valid {
		pid, err := uuid.Parse(published.String)
		if err != nil {
			return nil, err
		}
		rec.PublishedCampaignID = &pid
	}
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, err
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &rec.Draft); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	rec.Draft.Normalize()
	return &rec, nil
}
