package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/creator-marketplace/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeUpdate(t *testing.T, body string) *UpdateDraftRequest {
	t.Helper()
	var req UpdateDraftRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NoError(t, req.Check())
	return &req
}

func TestApply_ReplacedHashtagsAreNormalized(t *testing.T) {
	d := models.NewCampaignDraft(time.Now(), 0)
	d.AddHashtag("old")

	decodeUpdate(t, `{"hashtags": ["gaming", "#gaming", " tech ", "  "]}`).Apply(&d)

	assert.Equal(t, []string{"#gaming", "#tech"}, d.Hashtags)
}

func TestApply_ReplaceThenAdd(t *testing.T) {
	d := models.NewCampaignDraft(time.Now(), 0)

	decodeUpdate(t, `{"hashtags": ["tech"], "addHashtag": "#tech", "dos": ["Show the product"], "addDo": " Tag us "}`).Apply(&d)

	assert.Equal(t, []string{"#tech"}, d.Hashtags)
	assert.Equal(t, []string{"Show the product", "Tag us"}, d.Dos)
}

func TestApply_LeavesUnsetFieldsAlone(t *testing.T) {
	d := models.NewCampaignDraft(time.Now(), 0)
	d.Title = "Spring launch"
	d.Hashtags = []string{"#keep"}

	decodeUpdate(t, `{"maxPayout": 250, "isPublic": false}`).Apply(&d)

	assert.Equal(t, "Spring launch", d.Title)
	assert.Equal(t, []string{"#keep"}, d.Hashtags)
	assert.Equal(t, 250.0, d.MaxPayout)
	assert.False(t, d.IsPublic)
}

func TestApply_RemoveByIndex(t *testing.T) {
	d := models.NewCampaignDraft(time.Now(), 0)
	d.Dos = []string{"a", "b", "c"}

	decodeUpdate(t, `{"remove": {"list": "dos", "index": 1}}`).Apply(&d)
	assert.Equal(t, []string{"a", "c"}, d.Dos)

	decodeUpdate(t, `{"remove": {"list": "dos", "index": 9}}`).Apply(&d)
	assert.Equal(t, []string{"a", "c"}, d.Dos, "out of range index is ignored")
}

func TestCheck_RejectsBadRemove(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown list", `{"remove": {"list": "secrets", "index": 0}}`},
		{"negative index", `{"remove": {"list": "dos", "index": -1}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateDraftRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Error(t, req.Check())
		})
	}
}
