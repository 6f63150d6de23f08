package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusCancelled = "cancelled"
)

// Valid state transitions: from -> []to
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusActive:    {CampaignStatusPaused, CampaignStatusCompleted, CampaignStatusCancelled},
	CampaignStatusPaused:    {CampaignStatusActive, CampaignStatusCancelled},
	CampaignStatusCompleted: {},
	CampaignStatusCancelled: {},
}

func IsValidCampaignTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// Campaign is a published campaign in the system of record.
type Campaign struct {
	ID          uuid.UUID     `json:"id"`
	DraftID     uuid.UUID     `json:"draft_id"`
	BrandUserID uuid.UUID     `json:"brand_user_id"`
	Title       string        `json:"title"`
	BrandName   string        `json:"brand_name"`
	Status      string        `json:"status"`
	Spec        CampaignDraft `json:"spec"`
	PublishedAt time.Time     `json:"published_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewCampaignFromDraft builds the campaign written on publish.
func NewCampaignFromDraft(rec *DraftRecord, now time.Time) *Campaign {
	return &Campaign{
		DraftID:     rec.ID,
		BrandUserID: rec.OwnerUserID,
		Title:       rec.Draft.Title,
		BrandName:   rec.Draft.BrandName,
		Status:      CampaignStatusActive,
		Spec:        rec.Draft.Clone(),
		PublishedAt: now,
		UpdatedAt:   now,
	}
}
