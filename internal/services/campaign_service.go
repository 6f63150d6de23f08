package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/creator-marketplace/backend/internal/rbac"
	"github.com/creator-marketplace/backend/internal/repositories"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CampaignService serves published campaigns. Brands see their own
// campaigns; creators see active public ones.
type CampaignService struct {
	campaigns CampaignStore
	audit     AuditLogger
	log       *zap.Logger
}

func NewCampaignService(campaigns CampaignStore, audit AuditLogger, log *zap.Logger) *CampaignService {
	return &CampaignService{
		campaigns: campaigns,
		audit:     audit,
		log:       log,
	}
}

func (s *CampaignService) GetByID(ctx context.Context, id, userID uuid.UUID, role string) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	if !visibleTo(c, userID, role) {
		return nil, ErrCampaignNotFound
	}
	return c, nil
}

func visibleTo(c *models.Campaign, userID uuid.UUID, role string) bool {
	if c.BrandUserID == userID {
		return true
	}
	return role == rbac.RoleCreator && c.Status == models.CampaignStatusActive && c.Spec.IsPublic
}

func (s *CampaignService) List(ctx context.Context, userID uuid.UUID, role string, f repositories.CampaignFilter) ([]models.Campaign, error) {
	if role == rbac.RoleCreator {
		active := models.CampaignStatusActive
		f.BrandUserID = nil
		f.Status = &active
		f.PublicOnly = true
	} else {
		f.BrandUserID = &userID
	}

	campaigns, err := s.campaigns.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if campaigns == nil {
		campaigns = []models.Campaign{}
	}
	return campaigns, nil
}

// UpdateStatus moves a brand's campaign along its lifecycle.
func (s *CampaignService) UpdateStatus(ctx context.Context, id, userID uuid.UUID, status string) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.BrandUserID != userID {
		return nil, ErrCampaignNotFound
	}

	if !models.IsValidCampaignTransition(c.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, status)
	}

	if err := s.campaigns.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCampaignNotFound
		}
		return nil, err
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "brand",
		Action:      models.AuditActionCampaignStatusSet,
		EntityType:  "campaign",
		EntityID:    &id,
		Meta:        map[string]any{"from": c.Status, "to": status},
	})

	s.log.Info("campaign status changed",
		zap.String("campaign_id", id.String()),
		zap.String("from", c.Status),
		zap.String("to", status),
	)

	c.Status = status
	return c, nil
}
