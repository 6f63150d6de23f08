package validation

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/creator-marketplace/backend/internal/models"
)

func validDraft() models.CampaignDraft {
	d := models.NewCampaignDraft(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	d.Title = "Gaming Keyboard Review"
	d.BrandName = "KeyCo"
	d.ShortDescription = "Review our new mechanical keyboard"
	d.Categories = []string{"gaming"}
	d.Platforms = []string{"youtube"}
	d.StartDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.Deadline = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	d.PayoutPer1k = 8
	d.MaxPayout = 500
	d.TotalBudget = 5000
	d.Dos = []string{"Include unboxing"}
	d.Donts = []string{"No comparisons"}
	return d
}

func fields(errs []FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidDraftHasNoErrors(t *testing.T) {
	d := validDraft()
	if errs := Validate(&d, ModePublish); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if !Valid(&d) {
		t.Error("Valid() = false for a valid draft")
	}
}

func TestMaxPayoutAboveBudgetIsSingleError(t *testing.T) {
	d := validDraft()
	d.MaxPayout = 6000

	errs := Validate(&d, ModePublish)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}
	if errs[0].Field != "maxPayout" {
		t.Errorf("field = %q, want maxPayout", errs[0].Field)
	}
	if !strings.Contains(errs[0].Message, "total budget") {
		t.Errorf("message %q does not mention total budget", errs[0].Message)
	}
}

func TestDeadlineMustFollowStartDate(t *testing.T) {
	tests := []struct {
		name     string
		deadline time.Time
	}{
		{"same instant", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"before start", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Deadline = tt.deadline

			errs := Validate(&d, ModePublish)
			if !reflect.DeepEqual(fields(errs), []string{"deadline"}) {
				t.Fatalf("errors = %v", errs)
			}
			if errs[0].Message != "Deadline must be after start date" {
				t.Errorf("message = %q", errs[0].Message)
			}
		})
	}
}

func TestLengthLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.CampaignDraft)
		field  string
	}{
		{"empty title", func(d *models.CampaignDraft) { d.Title = "" }, "title"},
		{"long title", func(d *models.CampaignDraft) { d.Title = strings.Repeat("a", 81) }, "title"},
		{"empty description", func(d *models.CampaignDraft) { d.ShortDescription = "" }, "shortDescription"},
		{"long description", func(d *models.CampaignDraft) { d.ShortDescription = strings.Repeat("a", 241) }, "shortDescription"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			if got := fields(Validate(&d, ModePublish)); !reflect.DeepEqual(got, []string{tt.field}) {
				t.Errorf("fields = %v, want [%s]", got, tt.field)
			}
		})
	}
}

func TestLengthLimitsCountCharacters(t *testing.T) {
	d := validDraft()
	d.Title = strings.Repeat("é", 80)
	d.ShortDescription = strings.Repeat("ü", 240)
	if errs := Validate(&d, ModePublish); len(errs) != 0 {
		t.Errorf("expected boundary lengths to pass, got %v", errs)
	}
}

func TestPayoutRanges(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.CampaignDraft)
		fields []string
	}{
		{"payout too low", func(d *models.CampaignDraft) { d.PayoutPer1k = 0.5 }, []string{"payoutPer1k"}},
		{"payout too high", func(d *models.CampaignDraft) { d.PayoutPer1k = 1001 }, []string{"payoutPer1k"}},
		{"payout bounds", func(d *models.CampaignDraft) { d.PayoutPer1k = 1000 }, nil},
		{"max payout too low", func(d *models.CampaignDraft) { d.MaxPayout = 9 }, []string{"maxPayout"}},
		{"budget too low", func(d *models.CampaignDraft) { d.TotalBudget = 99; d.MaxPayout = 50 }, []string{"totalBudget"}},
		{"max payout equals budget", func(d *models.CampaignDraft) { d.MaxPayout = 5000 }, nil},
		{"negative caps", func(d *models.CampaignDraft) { d.DailyCap = -1; d.PerCreatorCap = -1 }, []string{"dailyCap", "perCreatorCap"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			got := fields(Validate(&d, ModePublish))
			if len(got) == 0 && len(tt.fields) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.fields) {
				t.Errorf("fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestRequiredListsAndIncrementalCorrection(t *testing.T) {
	d := validDraft()
	d.Categories = nil
	d.Platforms = []string{}
	d.Dos = nil
	d.Donts = []string{}

	want := []string{"categories", "platforms", "dos", "donts"}
	if got := fields(Validate(&d, ModePublish)); !reflect.DeepEqual(got, want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}

	d.Categories = []string{"tech"}
	want = []string{"platforms", "dos", "donts"}
	if got := fields(Validate(&d, ModePublish)); !reflect.DeepEqual(got, want) {
		t.Fatalf("after categories: fields = %v, want %v", got, want)
	}

	d.Platforms = []string{"tiktok"}
	d.Dos = []string{"Show the product"}
	d.Donts = []string{"No profanity"}
	if errs := Validate(&d, ModePublish); len(errs) != 0 {
		t.Fatalf("expected no errors after correction, got %v", errs)
	}
	if errs := Validate(&d, ModePublish); len(errs) != 0 {
		t.Fatalf("second run: expected no errors, got %v", errs)
	}
}

func TestInviteEmails(t *testing.T) {
	d := validDraft()
	d.IsPublic = false
	d.InviteEmails = []string{"creator@example.com", "not-an-email", "x@y.io"}

	errs := Validate(&d, ModePublish)
	if !reflect.DeepEqual(fields(errs), []string{"inviteEmails[1]"}) {
		t.Fatalf("errors = %v", errs)
	}
	if errs[0].Message != "Invite email must be a valid email address" {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestEnums(t *testing.T) {
	d := validDraft()
	d.PayoutCadence = "daily"
	d.ApplicationWindow = "forever"

	want := []string{"payoutCadence", "applicationWindow"}
	if got := fields(Validate(&d, ModePublish)); !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %v, want %v", got, want)
	}
}

func TestCrossFieldRulesRunWhenFieldRulesFail(t *testing.T) {
	d := validDraft()
	d.MaxPayout = 5
	d.TotalBudget = 3

	errs := Validate(&d, ModePublish)
	want := []FieldError{
		{Field: "maxPayout", Message: "Max payout must be at least $10"},
		{Field: "maxPayout", Message: "Max payout cannot exceed total budget"},
		{Field: "totalBudget", Message: "Total budget must be at least $100"},
	}
	if !reflect.DeepEqual(errs, want) {
		t.Errorf("errors = %v, want %v", errs, want)
	}
}

func TestDeadlineRuleNeedsBothDates(t *testing.T) {
	d := validDraft()
	d.Deadline = time.Time{}

	errs := Validate(&d, ModePublish)
	if !reflect.DeepEqual(fields(errs), []string{"deadline"}) {
		t.Fatalf("errors = %v", errs)
	}
	if errs[0].Message != "Deadline is required" {
		t.Errorf("message = %q", errs[0].Message)
	}
}

func TestAllViolationsReportedInFieldOrder(t *testing.T) {
	d := models.NewCampaignDraft(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 0)
	d.Deadline = d.StartDate
	d.MaxPayout = 9000

	want := []string{
		"title", "brandName", "shortDescription", "categories", "platforms",
		"deadline", "maxPayout", "dos", "donts",
	}
	if got := fields(Validate(&d, ModePublish)); !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %v, want %v", got, want)
	}
}

func TestInteractiveModeToleratesIncompleteDraft(t *testing.T) {
	d := models.NewCampaignDraft(time.Now(), 0)
	if errs := Validate(&d, ModeInteractive); len(errs) != 0 {
		t.Fatalf("fresh draft should have no interactive errors, got %v", errs)
	}

	d.Deadline = d.StartDate.Add(-time.Hour)
	d.MaxPayout = d.TotalBudget + 1
	if errs := Validate(&d, ModeInteractive); len(errs) != 0 {
		t.Fatalf("cross-field rules should wait for publish, got %v", errs)
	}
}

func TestInteractiveModeReportsInputErrors(t *testing.T) {
	d := models.NewCampaignDraft(time.Now(), 0)
	d.Title = strings.Repeat("x", 81)
	d.PayoutPer1k = 2000
	d.InviteEmails = []string{"nope"}

	want := []string{"title", "inviteEmails[0]", "payoutPer1k"}
	if got := fields(Validate(&d, ModeInteractive)); !reflect.DeepEqual(got, want) {
		t.Errorf("fields = %v, want %v", got, want)
	}
}

func TestNilDraft(t *testing.T) {
	errs := Validate(nil, ModePublish)
	if len(errs) != 1 || errs[0].Field != "draft" {
		t.Errorf("errors = %v", errs)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input string
		mode  Mode
		ok    bool
	}{
		{"", ModeInteractive, true},
		{"interactive", ModeInteractive, true},
		{"publish", ModePublish, true},
		{"strict", ModeInteractive, false},
	}
	for _, tt := range tests {
		mode, ok := ParseMode(tt.input)
		if mode != tt.mode || ok != tt.ok {
			t.Errorf("ParseMode(%q) = %v, %v", tt.input, mode, ok)
		}
	}
}
