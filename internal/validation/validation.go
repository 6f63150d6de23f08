// Package validation checks campaign drafts against the publishing rules.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/go-playground/validator/v10"
)

type Mode int

const (
	// ModeInteractive reports input errors on fields that have a value and
	// ignores missing data and cross-field rules.
	ModeInteractive Mode = iota
	// ModePublish enforces every rule.
	ModePublish
)

func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "interactive":
		return ModeInteractive, true
	case "publish":
		return ModePublish, true
	}
	return ModeInteractive, false
}

func (m Mode) String() string {
	if m == ModePublish {
		return "publish"
	}
	return "interactive"
}

// FieldError is a single rule violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterStructValidation(crossFieldRules, models.CampaignDraft{})
	return v
}

// crossFieldRules runs after the field tags, so a field that already failed
// its own rule is still checked against its partner.
func crossFieldRules(sl validator.StructLevel) {
	d := sl.Current().Interface().(models.CampaignDraft)

	if !d.StartDate.IsZero() && !d.Deadline.IsZero() && !d.Deadline.After(d.StartDate) {
		sl.ReportError(d.Deadline, "deadline", "Deadline", "gtfield", "StartDate")
	}
	if d.MaxPayout > d.TotalBudget {
		sl.ReportError(d.MaxPayout, "maxPayout", "MaxPayout", "ltefield", "TotalBudget")
	}
}

// fieldOrder is the position of each JSON field in CampaignDraft.
var fieldOrder = func() map[string]int {
	t := reflect.TypeOf(models.CampaignDraft{})
	order := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("json"), ",", 2)[0]
		order[name] = i
	}
	return order
}()

// Validate returns every violation in field order. It never stops at the
// first failing field and has no side effects.
func Validate(d *models.CampaignDraft, mode Mode) []FieldError {
	if d == nil {
		return []FieldError{{Field: "draft", Message: "Draft is required"}}
	}

	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "draft", Message: err.Error()}}
	}

	var out []FieldError
	for _, fe := range verrs {
		if mode == ModeInteractive && deferredToPublish(fe) {
			continue
		}
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return fieldOrder[BaseField(out[i].Field)] < fieldOrder[BaseField(out[j].Field)]
	})
	return out
}

// deferredToPublish reports rules that only make sense on a complete draft.
func deferredToPublish(fe validator.FieldError) bool {
	switch fe.Tag() {
	case "required", "gtfield", "ltefield":
		return true
	case "min":
		k := fe.Kind()
		return k == reflect.Slice || k == reflect.String
	}
	return false
}

// Valid is shorthand for a publish-mode check with no violations.
func Valid(d *models.CampaignDraft) bool {
	return len(Validate(d, ModePublish)) == 0
}
