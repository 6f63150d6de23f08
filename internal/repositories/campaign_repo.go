package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CampaignRepo is the system of record for published campaigns.
type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

// Create fails with ErrDuplicate when the draft was already published.
func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	spec, err := json.Marshal(c.Spec)
	if err != nil {
		return fmt.Errorf("encode campaign spec: %w", err)
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (draft_id, brand_user_id, title, brand_name, status, spec, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, updated_at
	`, c.DraftID, c.BrandUserID, c.Title, c.BrandName, c.Status, spec, c.PublishedAt,
	).Scan(&c.ID, &c.UpdatedAt)
	return mapPgError(err)
}

const campaignColumns = `id, draft_id, brand_user_id, title, brand_name, status, spec, published_at, updated_at`

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
	c, err := scanCampaign(row)
	if err != nil {
		return nil, mapPgError(err)
	}
	return c, nil
}

func (r *CampaignRepo) GetByDraftID(ctx context.Context, draftID uuid.UUID) (*models.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campaignColumns+` FROM campaigns WHERE draft_id = $1`, draftID)
	c, err := scanCampaign(row)
	if err != nil {
		return nil, mapPgError(err)
	}
	return c, nil
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type CampaignFilter struct {
	BrandUserID *uuid.UUID
	Status      *string
	Category    *string
	Platform    *string
	PublicOnly  bool
	Limit       int
	Offset      int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.BrandUserID != nil {
		where = append(where, fmt.Sprintf("brand_user_id = $%d", argIdx))
		args = append(args, *f.BrandUserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}
	if f.Category != nil {
		where = append(where, fmt.Sprintf("spec @> jsonb_build_object('categories', jsonb_build_array($%d::text))", argIdx))
		args = append(args, *f.Category)
		argIdx++
	}
	if f.Platform != nil {
		where = append(where, fmt.Sprintf("spec @> jsonb_build_object('platforms', jsonb_build_array($%d::text))", argIdx))
		args = append(args, *f.Platform)
		argIdx++
	}

	if f.PublicOnly {
		where = append(where, `spec @> '{"isPublic": true}'`)
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY published_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func scanCampaign(row pgx.Row) (*models.Campaign, error) {
	var c models.Campaign
	var spec []byte
	if err := row.Scan(&c.ID, &c.DraftID, &c.BrandUserID, &c.Title, &c.BrandName,
		&c.Status, &spec, &c.PublishedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(spec, &c.Spec); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", c.ID, err)
	}
	c.Spec.Normalize()
	return &c, nil
}
