package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var messages = map[string]string{
	"title.required":            "Title is required",
	"title.max":                 "Title must be 80 characters or less",
	"brandName.required":        "Brand name is required",
	"shortDescription.required": "Description is required",
	"shortDescription.max":      "Description must be 240 characters or less",
	"categories.min":            "Select at least one category",
	"platforms.min":             "Select at least one platform",
	"startDate.required":        "Start date is required",
	"deadline.required":         "Deadline is required",
	"deadline.gtfield":          "Deadline must be after start date",
	"inviteEmails.email":        "Invite email must be a valid email address",
	"payoutPer1k.min":           "Payout must be at least $1",
	"payoutPer1k.max":           "Payout cannot exceed $1000",
	"maxPayout.min":             "Max payout must be at least $10",
	"maxPayout.ltefield":        "Max payout cannot exceed total budget",
	"totalBudget.min":           "Total budget must be at least $100",
	"dailyCap.min":              "Daily cap cannot be negative",
	"perCreatorCap.min":         "Per-creator cap cannot be negative",
	"payoutCadence.oneof":       "Payout cadence must be weekly, bi-weekly or monthly",
	"minFollowers.min":          "Minimum followers cannot be negative",
	"creatorSlots.min":          "Creator slots cannot be negative",
	"dos.min":                   "Add at least one 'Do'",
	"donts.min":                 "Add at least one 'Don't'",
	"applicationWindow.oneof":   "Application window must be unlimited, fixed-date or creator-count",
}

func message(fe validator.FieldError) string {
	field := BaseField(fe.Field())
	if msg, ok := messages[field+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return field + " must be at least " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	case "email":
		return "Invalid email format"
	default:
		return field + " is invalid"
	}
}

// BaseField strips a dive index: "inviteEmails[2]" -> "inviteEmails".
func BaseField(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		return name[:i]
	}
	return name
}
