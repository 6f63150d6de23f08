package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Payout cadences
const (
	PayoutCadenceWeekly   = "weekly"
	PayoutCadenceBiWeekly = "bi-weekly"
	PayoutCadenceMonthly  = "monthly"
)

// Application windows
const (
	ApplicationWindowUnlimited    = "unlimited"
	ApplicationWindowFixedDate    = "fixed-date"
	ApplicationWindowCreatorCount = "creator-count"
)

// Draft statuses
const (
	DraftStatusEditing   = "editing"
	DraftStatusPublished = "published"
)

const DefaultDeadlineDays = 30

// CampaignDraft is the flat record a brand edits across the authoring steps.
// The JSON names are the persisted shape and must stay stable.
type CampaignDraft struct {
	// Basics
	Title            string    `json:"title" validate:"required,max=80"`
	BrandName        string    `json:"brandName" validate:"required"`
	ShortDescription string    `json:"shortDescription" validate:"required,max=240"`
	Categories       []string  `json:"categories" validate:"min=1"`
	Platforms        []string  `json:"platforms" validate:"min=1"`
	StartDate        time.Time `json:"startDate" validate:"required"`
	Deadline         time.Time `json:"deadline" validate:"required"`
	IsPublic         bool      `json:"isPublic"`
	InviteEmails     []string  `json:"inviteEmails" validate:"omitempty,dive,email"`

	// Payout & budget
	PayoutPer1k   float64 `json:"payoutPer1k" validate:"min=1,max=1000"`
	MaxPayout     float64 `json:"maxPayout" validate:"min=10"`
	TotalBudget   float64 `json:"totalBudget" validate:"min=100"`
	DailyCap      float64 `json:"dailyCap" validate:"min=0"`
	PerCreatorCap float64 `json:"perCreatorCap" validate:"min=0"`
	PayoutCadence string  `json:"payoutCadence" validate:"oneof=weekly bi-weekly monthly"`

	// Requirements
	MinFollowers      int      `json:"minFollowers" validate:"min=0"`
	ContentFormat     string   `json:"contentFormat"`
	MandatoryElements []string `json:"mandatoryElements"`
	Hashtags          []string `json:"hashtags"`
	RequiresApproval  bool     `json:"requiresApproval"`
	CreatorSlots      int      `json:"creatorSlots" validate:"min=0"`

	// Do's & don'ts
	Dos   []string `json:"dos" validate:"min=1"`
	Donts []string `json:"donts" validate:"min=1"`

	// Assets & branding
	BrandLogo          string   `json:"brandLogo"`
	CoverImage         string   `json:"coverImage"`
	ReferenceMaterials []string `json:"referenceMaterials"`
	LegalNote          string   `json:"legalNote"`

	// Targeting
	Regions           []string `json:"regions"`
	Languages         []string `json:"languages"`
	VerifiedOnly      bool     `json:"verifiedOnly"`
	ApplicationWindow string   `json:"applicationWindow" validate:"oneof=unlimited fixed-date creator-count"`
}

// NewCampaignDraft returns a draft populated with the authoring defaults.
// deadlineDays <= 0 falls back to DefaultDeadlineDays.
func NewCampaignDraft(now time.Time, deadlineDays int) CampaignDraft {
	if deadlineDays <= 0 {
		deadlineDays = DefaultDeadlineDays
	}
	d := CampaignDraft{
		StartDate:         now,
		Deadline:          now.Add(time.Duration(deadlineDays) * 24 * time.Hour),
		IsPublic:          true,
		PayoutPer1k:       5,
		MaxPayout:         500,
		TotalBudget:       5000,
		PayoutCadence:     PayoutCadenceMonthly,
		MinFollowers:      1000,
		ApplicationWindow: ApplicationWindowUnlimited,
	}
	d.Normalize()
	return d
}

// Normalize makes the draft's encoding canonical: nil lists become empty,
// hashtags are normalized and de-duplicated, and dates are stored in UTC
// with millisecond precision.
func (d *CampaignDraft) Normalize() {
	d.Hashtags = NormalizeHashtags(d.Hashtags)
	for _, list := range []*[]string{
		&d.Categories, &d.Platforms, &d.InviteEmails, &d.MandatoryElements,
		&d.Hashtags, &d.Dos, &d.Donts, &d.ReferenceMaterials, &d.Regions, &d.Languages,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
	d.StartDate = d.StartDate.UTC().Truncate(time.Millisecond)
	d.Deadline = d.Deadline.UTC().Truncate(time.Millisecond)
}

// Clone returns a deep copy so snapshots do not share list backing arrays.
func (d CampaignDraft) Clone() CampaignDraft {
	c := d
	c.Categories = cloneStrings(d.Categories)
	c.Platforms = cloneStrings(d.Platforms)
	c.InviteEmails = cloneStrings(d.InviteEmails)
	c.MandatoryElements = cloneStrings(d.MandatoryElements)
	c.Hashtags = cloneStrings(d.Hashtags)
	c.Dos = cloneStrings(d.Dos)
	c.Donts = cloneStrings(d.Donts)
	c.ReferenceMaterials = cloneStrings(d.ReferenceMaterials)
	c.Regions = cloneStrings(d.Regions)
	c.Languages = cloneStrings(d.Languages)
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// NormalizeHashtag trims the tag and prefixes it with "#" when missing.
func NormalizeHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if !strings.HasPrefix(tag, "#") {
		tag = "#" + tag
	}
	return tag
}

// NormalizeHashtags normalizes every tag, dropping blanks and tags that
// repeat once normalized. Order of first appearance is kept.
func NormalizeHashtags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = NormalizeHashtag(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// AddHashtag appends a normalized hashtag unless it is blank or already present.
func (d *CampaignDraft) AddHashtag(tag string) bool {
	tag = NormalizeHashtag(tag)
	if tag == "" {
		return false
	}
	for _, h := range d.Hashtags {
		if h == tag {
			return false
		}
	}
	d.Hashtags = append(d.Hashtags, tag)
	return true
}

func (d *CampaignDraft) AddDo(item string) bool {
	return appendTrimmed(&d.Dos, item)
}

func (d *CampaignDraft) AddDont(item string) bool {
	return appendTrimmed(&d.Donts, item)
}

func (d *CampaignDraft) AddMandatoryElement(item string) bool {
	return appendTrimmed(&d.MandatoryElements, item)
}

func appendTrimmed(list *[]string, item string) bool {
	item = strings.TrimSpace(item)
	if item == "" {
		return false
	}
	*list = append(*list, item)
	return true
}

// RemoveAt drops index i from list; out-of-range indexes are ignored.
func RemoveAt(list []string, i int) []string {
	if i < 0 || i >= len(list) {
		return list
	}
	out := make([]string, 0, len(list)-1)
	out = append(out, list[:i]...)
	return append(out, list[i+1:]...)
}

// DraftRecord is a draft as held by a draft store.
type DraftRecord struct {
	ID                  uuid.UUID     `json:"id"`
	OwnerUserID         uuid.UUID     `json:"owner_user_id"`
	Status              string        `json:"status"`
	CurrentStep         int           `json:"current_step"`
	Draft               CampaignDraft `json:"draft"`
	PublishedCampaignID *uuid.UUID    `json:"published_campaign_id,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}
