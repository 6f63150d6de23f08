package services

import (
	"context"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/creator-marketplace/backend/internal/repositories"
	"github.com/google/uuid"
)

// DraftStore persists whole drafts keyed by id. SaveDraft is an upsert.
type DraftStore interface {
	SaveDraft(ctx context.Context, rec *models.DraftRecord) error
	GetDraft(ctx context.Context, id uuid.UUID) (*models.DraftRecord, error)
}

// CampaignStore is the system of record for published campaigns.
type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	GetByDraftID(ctx context.Context, draftID uuid.UUID) (*models.Campaign, error)
	List(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

// AuditLogger records who did what. Writes are best effort.
type AuditLogger interface {
	Log(ctx context.Context, entry models.AuditLog) error
	GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error)
}
