package events

import (
	"encoding/json"
	"testing"
)

func TestEventUserIDSurvivesEncoding(t *testing.T) {
	ev := Event{Type: EventDraftSaved, Payload: map[string]any{"user_id": "abc", "draft_id": "d1"}}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatal(err)
	}
	var decoded Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.UserID() != "abc" {
		t.Errorf("UserID() = %q, want abc", decoded.UserID())
	}
	if decoded.Type != EventDraftSaved {
		t.Errorf("Type = %q", decoded.Type)
	}
}

func TestEventUserIDMissing(t *testing.T) {
	if id := (Event{}).UserID(); id != "" {
		t.Errorf("UserID() = %q, want empty", id)
	}
	if id := (Event{Payload: map[string]any{"user_id": 42}}).UserID(); id != "" {
		t.Errorf("UserID() = %q, want empty for non-string", id)
	}
}
