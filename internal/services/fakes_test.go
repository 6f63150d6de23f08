package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/creator-marketplace/backend/internal/events"
	"github.com/creator-marketplace/backend/internal/models"
	"github.com/creator-marketplace/backend/internal/repositories"
	"github.com/google/uuid"
)

// memDraftStore keeps the encoded record so tests can compare persisted
// bytes.
type memDraftStore struct {
	mu     sync.Mutex
	rows   map[uuid.UUID][]byte
	writes int
	err    error
}

func newMemDraftStore() *memDraftStore {
	return &memDraftStore{rows: make(map[uuid.UUID][]byte)}
}

func (s *memDraftStore) SaveDraft(_ context.Context, rec *models.DraftRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	data, err := json.Marshal(struct {
		Status      string               `json:"status"`
		Step        int                  `json:"step"`
		PublishedID *uuid.UUID           `json:"published_id"`
		Owner       uuid.UUID            `json:"owner"`
		Draft       models.CampaignDraft `json:"draft"`
	}{rec.Status, rec.CurrentStep, rec.PublishedCampaignID, rec.OwnerUserID, rec.Draft})
	if err != nil {
		return err
	}
	s.rows[rec.ID] = data
	s.writes++
	rec.UpdatedAt = time.Now()
	return nil
}

func (s *memDraftStore) GetDraft(_ context.Context, id uuid.UUID) (*models.DraftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	var row struct {
		Status      string               `json:"status"`
		Step        int                  `json:"step"`
		PublishedID *uuid.UUID           `json:"published_id"`
		Owner       uuid.UUID            `json:"owner"`
		Draft       models.CampaignDraft `json:"draft"`
	}
	if err := json.Unmarshal(data, &row); err != nil {
		return nil, err
	}
	return &models.DraftRecord{
		ID:                  id,
		OwnerUserID:         row.Owner,
		Status:              row.Status,
		CurrentStep:         row.Step,
		Draft:               row.Draft,
		PublishedCampaignID: row.PublishedID,
	}, nil
}

func (s *memDraftStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *memDraftStore) raw(id uuid.UUID) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.rows[id]...)
}

func (s *memDraftStore) writeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

type memCampaignStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Campaign
	err  error
}

func newMemCampaignStore() *memCampaignStore {
	return &memCampaignStore{rows: make(map[uuid.UUID]models.Campaign)}
}

func (s *memCampaignStore) Create(_ context.Context, c *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.rows {
		if existing.DraftID == c.DraftID {
			return repositories.ErrDuplicate
		}
	}
	c.ID = uuid.New()
	s.rows[c.ID] = *c
	return nil
}

func (s *memCampaignStore) GetByID(_ context.Context, id uuid.UUID) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (s *memCampaignStore) GetByDraftID(_ context.Context, draftID uuid.UUID) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.rows {
		if c.DraftID == draftID {
			return &c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *memCampaignStore) List(_ context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Campaign
	for _, c := range s.rows {
		if f.BrandUserID != nil && c.BrandUserID != *f.BrandUserID {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if f.PublicOnly && !c.Spec.IsPublic {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *memCampaignStore) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	c.Status = status
	s.rows[id] = c
	return nil
}

func (s *memCampaignStore) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *memCampaignStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

type memAudit struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (a *memAudit) Log(_ context.Context, entry models.AuditLog) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now()
	a.logs = append([]models.AuditLog{entry}, a.logs...)
	return nil
}

func (a *memAudit) GetByEntity(_ context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []models.AuditLog
	for _, l := range a.logs {
		if l.EntityType == entityType && l.EntityID != nil && *l.EntityID == entityID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (a *memAudit) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, 0, len(a.logs))
	for _, l := range a.logs {
		out = append(out, l.Action)
	}
	return out
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(_ context.Context, _ string, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
