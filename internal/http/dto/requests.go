package dto

import (
	"fmt"
	"time"

	"github.com/creator-marketplace/backend/internal/models"
)

// UpdateDraftRequest is a partial update of a draft. Nil fields are left
// unchanged; list fields replace the whole list.
type UpdateDraftRequest struct {
	Title            *string    `json:"title,omitempty"`
	BrandName        *string    `json:"brandName,omitempty"`
	ShortDescription *string    `json:"shortDescription,omitempty"`
	Categories       []string   `json:"categories,omitempty"`
	Platforms        []string   `json:"platforms,omitempty"`
	StartDate        *time.Time `json:"startDate,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	IsPublic         *bool      `json:"isPublic,omitempty"`
	InviteEmails     []string   `json:"inviteEmails,omitempty"`

	PayoutPer1k   *float64 `json:"payoutPer1k,omitempty"`
	MaxPayout     *float64 `json:"maxPayout,omitempty"`
	TotalBudget   *float64 `json:"totalBudget,omitempty"`
	DailyCap      *float64 `json:"dailyCap,omitempty"`
	PerCreatorCap *float64 `json:"perCreatorCap,omitempty"`
	PayoutCadence *string  `json:"payoutCadence,omitempty"`

	MinFollowers      *int     `json:"minFollowers,omitempty"`
	ContentFormat     *string  `json:"contentFormat,omitempty"`
	MandatoryElements []string `json:"mandatoryElements,omitempty"`
	Hashtags          []string `json:"hashtags,omitempty"`
	RequiresApproval  *bool    `json:"requiresApproval,omitempty"`
	CreatorSlots      *int     `json:"creatorSlots,omitempty"`

	Dos   []string `json:"dos,omitempty"`
	Donts []string `json:"donts,omitempty"`

	BrandLogo          *string  `json:"brandLogo,omitempty"`
	CoverImage         *string  `json:"coverImage,omitempty"`
	ReferenceMaterials []string `json:"referenceMaterials,omitempty"`
	LegalNote          *string  `json:"legalNote,omitempty"`

	Regions           []string `json:"regions,omitempty"`
	Languages         []string `json:"languages,omitempty"`
	VerifiedOnly      *bool    `json:"verifiedOnly,omitempty"`
	ApplicationWindow *string  `json:"applicationWindow,omitempty"`

	// List edits, applied after the replacements above.
	AddHashtag          *string     `json:"addHashtag,omitempty"`
	AddDo               *string     `json:"addDo,omitempty"`
	AddDont             *string     `json:"addDont,omitempty"`
	AddMandatoryElement *string     `json:"addMandatoryElement,omitempty"`
	Remove              *RemoveItem `json:"remove,omitempty"`
}

// RemoveItem drops one entry of a draft list by position.
type RemoveItem struct {
	List  string `json:"list"`
	Index int    `json:"index"`
}

var removableLists = map[string]func(d *models.CampaignDraft) *[]string{
	"hashtags":          func(d *models.CampaignDraft) *[]string { return &d.Hashtags },
	"dos":               func(d *models.CampaignDraft) *[]string { return &d.Dos },
	"donts":             func(d *models.CampaignDraft) *[]string { return &d.Donts },
	"mandatoryElements": func(d *models.CampaignDraft) *[]string { return &d.MandatoryElements },
	"inviteEmails":      func(d *models.CampaignDraft) *[]string { return &d.InviteEmails },
	"categories":        func(d *models.CampaignDraft) *[]string { return &d.Categories },
	"platforms":         func(d *models.CampaignDraft) *[]string { return &d.Platforms },
	"regions":           func(d *models.CampaignDraft) *[]string { return &d.Regions },
	"languages":         func(d *models.CampaignDraft) *[]string { return &d.Languages },
}

// Check rejects malformed requests before any change is applied.
func (r *UpdateDraftRequest) Check() error {
	if r.Remove != nil {
		if _, ok := removableLists[r.Remove.List]; !ok {
			return fmt.Errorf("unknown list %q", r.Remove.List)
		}
		if r.Remove.Index < 0 {
			return fmt.Errorf("index must not be negative")
		}
	}
	return nil
}

// Apply writes the requested changes into d.
func (r *UpdateDraftRequest) Apply(d *models.CampaignDraft) {
	setString(&d.Title, r.Title)
	setString(&d.BrandName, r.BrandName)
	setString(&d.ShortDescription, r.ShortDescription)
	setList(&d.Categories, r.Categories)
	setList(&d.Platforms, r.Platforms)
	if r.StartDate != nil {
		d.StartDate = *r.StartDate
	}
	if r.Deadline != nil {
		d.Deadline = *r.Deadline
	}
	setBool(&d.IsPublic, r.IsPublic)
	setList(&d.InviteEmails, r.InviteEmails)

	setFloat(&d.PayoutPer1k, r.PayoutPer1k)
	setFloat(&d.MaxPayout, r.MaxPayout)
	setFloat(&d.TotalBudget, r.TotalBudget)
	setFloat(&d.DailyCap, r.DailyCap)
	setFloat(&d.PerCreatorCap, r.PerCreatorCap)
	setString(&d.PayoutCadence, r.PayoutCadence)

	setInt(&d.MinFollowers, r.MinFollowers)
	setString(&d.ContentFormat, r.ContentFormat)
	setList(&d.MandatoryElements, r.MandatoryElements)
	if r.Hashtags != nil {
		d.Hashtags = models.NormalizeHashtags(r.Hashtags)
	}
	setBool(&d.RequiresApproval, r.RequiresApproval)
	setInt(&d.CreatorSlots, r.CreatorSlots)

	setList(&d.Dos, r.Dos)
	setList(&d.Donts, r.Donts)

	setString(&d.BrandLogo, r.BrandLogo)
	setString(&d.CoverImage, r.CoverImage)
	setList(&d.ReferenceMaterials, r.ReferenceMaterials)
	setString(&d.LegalNote, r.LegalNote)

	setList(&d.Regions, r.Regions)
	setList(&d.Languages, r.Languages)
	setBool(&d.VerifiedOnly, r.VerifiedOnly)
	setString(&d.ApplicationWindow, r.ApplicationWindow)

	if r.AddHashtag != nil {
		d.AddHashtag(*r.AddHashtag)
	}
	if r.AddDo != nil {
		d.AddDo(*r.AddDo)
	}
	if r.AddDont != nil {
		d.AddDont(*r.AddDont)
	}
	if r.AddMandatoryElement != nil {
		d.AddMandatoryElement(*r.AddMandatoryElement)
	}
	if r.Remove != nil {
		if list, ok := removableLists[r.Remove.List]; ok {
			l := list(d)
			*l = models.RemoveAt(*l, r.Remove.Index)
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setList(dst *[]string, v []string) {
	if v != nil {
		*dst = append([]string(nil), v...)
	}
}

type GoToStepRequest struct {
	Step int `json:"step"`
}

type UpdateCampaignStatusRequest struct {
	Status string `json:"status"`
}
