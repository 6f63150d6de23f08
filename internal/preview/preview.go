// Package preview derives the read-only figures shown next to a draft.
package preview

import (
	"math"
	"time"

	"github.com/creator-marketplace/backend/internal/models"
)

// LowPayoutThreshold is the payout per 1k views under which creators tend to skip a campaign.
const LowPayoutThreshold = 5

type Projections struct {
	CostPerView    float64 `json:"cost_per_view"`
	ProjectedViews int64   `json:"projected_views"`
	MaxCreators    int64   `json:"max_creators"`
}

type Preview struct {
	Projections          Projections `json:"projections"`
	DaysLeft             int         `json:"days_left"`
	CompletionPercentage int         `json:"completion_percentage"`
	Warnings             []string    `json:"warnings"`
}

func Project(d *models.CampaignDraft) Projections {
	var p Projections
	p.CostPerView = d.PayoutPer1k / 1000
	if d.TotalBudget > 0 && p.CostPerView > 0 {
		p.ProjectedViews = int64(math.Floor(d.TotalBudget / p.CostPerView))
	}
	if d.MaxPayout > 0 {
		p.MaxCreators = int64(math.Floor(d.TotalBudget / d.MaxPayout))
	}
	return p
}

// DaysLeft rounds the time to deadline up to whole days, never below zero.
func DaysLeft(deadline, now time.Time) int {
	diff := deadline.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// CompletionPercentage is the share of required inputs that hold a value.
func CompletionPercentage(d *models.CampaignDraft) int {
	signals := []bool{
		d.Title != "",
		d.BrandName != "",
		d.ShortDescription != "",
		len(d.Categories) > 0,
		len(d.Platforms) > 0,
		d.PayoutPer1k > 0,
		d.MaxPayout > 0,
		d.TotalBudget > 0,
		len(d.Dos) > 0,
		len(d.Donts) > 0,
	}
	done := 0
	for _, ok := range signals {
		if ok {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(signals)) * 100))
}

// Warnings lists soft issues that do not block publishing.
func Warnings(d *models.CampaignDraft) []string {
	warnings := []string{}
	if d.BrandLogo == "" {
		warnings = append(warnings, "No brand logo uploaded")
	}
	if d.CoverImage == "" {
		warnings = append(warnings, "No cover image uploaded")
	}
	if len(d.MandatoryElements) == 0 {
		warnings = append(warnings, "No mandatory elements specified")
	}
	if d.PayoutPer1k < LowPayoutThreshold {
		warnings = append(warnings, "Low CPM may reduce creator interest")
	}
	if d.MaxPayout > d.TotalBudget*0.5 {
		warnings = append(warnings, "High max payout relative to total budget")
	}
	return warnings
}

func Build(d *models.CampaignDraft, now time.Time) Preview {
	return Preview{
		Projections:          Project(d),
		DaysLeft:             DaysLeft(d.Deadline, now),
		CompletionPercentage: CompletionPercentage(d),
		Warnings:             Warnings(d),
	}
}
