package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DraftRepo keeps campaign drafts in Postgres, one row per draft.
type DraftRepo struct {
	pool *pgxpool.Pool
}

func NewDraftRepo(pool *pgxpool.Pool) *DraftRepo {
	return &DraftRepo{pool: pool}
}

// SaveDraft inserts or replaces the whole draft.
func (r *DraftRepo) SaveDraft(ctx context.Context, rec *models.DraftRecord) error {
	data, err := json.Marshal(rec.Draft)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO campaign_drafts (id, owner_user_id, status, current_step, data, published_campaign_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			current_step = EXCLUDED.current_step,
			data = EXCLUDED.data,
			published_campaign_id = EXCLUDED.published_campaign_id,
			updated_at = now()
		RETURNING created_at, updated_at
	`, rec.ID, rec.OwnerUserID, rec.Status, rec.CurrentStep, data, rec.PublishedCampaignID,
	).Scan(&rec.CreatedAt, &rec.UpdatedAt)
	return mapPgError(err)
}

func (r *DraftRepo) GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftRecord, error) {
	var rec models.DraftRecord
	var data []byte
	err := r.pool.QueryRow(ctx, `
		SELECT id, owner_user_id, status, current_step, data, published_campaign_id, created_at, updated_at
		FROM campaign_drafts WHERE id = $1
	`, id).Scan(&rec.ID, &rec.OwnerUserID, &rec.Status, &rec.CurrentStep, &data,
		&rec.PublishedCampaignID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, mapPgError(err)
	}
	if err := json.Unmarshal(data, &rec.Draft); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	rec.Draft.Normalize()
	return &rec, nil
}
