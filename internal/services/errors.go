package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/creator-marketplace/backend/internal/validation"
)

var (
	ErrDraftNotFound         = errors.New("draft not found")
	ErrDraftAlreadyPublished = errors.New("draft already published")
	ErrPublishInProgress     = errors.New("publish already in progress")
	ErrPublishNotAllowed     = errors.New("publish is only available from the review step")
	ErrPublishFailed         = errors.New("campaign publish failed")
	ErrSessionClosed         = errors.New("draft session closed")
	ErrCampaignNotFound      = errors.New("campaign not found")
	ErrInvalidTransition     = errors.New("invalid campaign status transition")
)

// ValidationError carries every rule a draft failed at publish time.
type ValidationError struct {
	Errors []validation.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Error())
	}
	return fmt.Sprintf("draft is not publishable: %s", strings.Join(parts, "; "))
}
