package events

import "context"

// Event types
const (
	EventDraftSaved        = "draft_saved"
	EventDraftSaveFailed   = "draft_save_failed"
	EventCampaignPublished = "campaign_published"
	EventPublishFailed     = "campaign_publish_failed"
)

// StreamDrafts carries authoring notifications for connected editors.
const StreamDrafts = "events:drafts"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// UserID returns the payload's user_id, if any.
func (e Event) UserID() string {
	id, _ := e.Payload["user_id"].(string)
	return id
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
