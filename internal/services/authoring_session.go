package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"

	"github.com/creator-marketplace/backend/internal/autosave"
	"github.com/creator-marketplace/backend/internal/events"
	"github.com/creator-marketplace/backend/internal/metrics"
	"github.com/creator-marketplace/backend/internal/models"
	"github.com/creator-marketplace/backend/internal/stepper"
	"github.com/creator-marketplace/backend/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session owns one draft while it is being edited. All mutations go through
// it; saves are debounced and always write the newest state.
type Session struct {
	store     DraftStore
	publisher events.Publisher
	log       *zap.Logger
	now       func() time.Time

	mu         sync.Mutex
	rec        models.DraftRecord
	nav        *stepper.Navigator
	publishing bool
	closed     bool
	lastActive time.Time
	lastSaved  string

	saver *autosave.Debouncer
	done  chan struct{}
}

func newSession(rec *models.DraftRecord, persisted bool, store DraftStore, publisher events.Publisher, delay time.Duration, now func() time.Time, log *zap.Logger) *Session {
	s := &Session{
		store:     store,
		publisher: publisher,
		log:       log.With(zap.String("draft_id", rec.ID.String())),
		now:       now,
		rec:       *rec,
		nav:       stepper.New(rec.CurrentStep),
		done:      make(chan struct{}),
	}
	s.rec.Draft = rec.Draft.Clone()
	s.rec.Draft.Normalize()
	s.rec.CurrentStep = s.nav.Current()
	s.lastActive = now()
	if persisted {
		s.lastSaved = fingerprint(&s.rec)
	}
	s.saver = autosave.NewDebouncer(delay, s.persist, s.reportSaveError, s.log)
	return s
}

func (s *Session) ID() uuid.UUID {
	return s.rec.ID
}

func (s *Session) OwnerID() uuid.UUID {
	return s.rec.OwnerUserID
}

// Snapshot returns a copy of the current record.
func (s *Session) Snapshot() models.DraftRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() models.DraftRecord {
	snap := s.rec
	snap.Draft = s.rec.Draft.Clone()
	if s.rec.PublishedCampaignID != nil {
		id := *s.rec.PublishedCampaignID
		snap.PublishedCampaignID = &id
	}
	return snap
}

// Update applies mutate to the draft, schedules an autosave and returns the
// field-level input errors of the result.
func (s *Session) Update(mutate func(d *models.CampaignDraft)) ([]validation.FieldError, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if s.rec.Status == models.DraftStatusPublished {
		s.mu.Unlock()
		return nil, ErrDraftAlreadyPublished
	}
	mutate(&s.rec.Draft)
	s.rec.Draft.Normalize()
	errs := validation.Validate(&s.rec.Draft, validation.ModeInteractive)
	s.lastActive = s.now()
	s.mu.Unlock()

	s.saver.Trigger()
	return errs, nil
}

func (s *Session) Validate(mode validation.Mode) []validation.FieldError {
	s.mu.Lock()
	defer s.mu.Unlock()
	return validation.Validate(&s.rec.Draft, mode)
}

func (s *Session) Steps() stepper.StepState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nav.State()
}

func (s *Session) Next(ctx context.Context) (stepper.StepState, error) {
	return s.navigate(ctx, func(n *stepper.Navigator) { n.Next() })
}

func (s *Session) Previous(ctx context.Context) (stepper.StepState, error) {
	return s.navigate(ctx, func(n *stepper.Navigator) { n.Previous() })
}

func (s *Session) GoTo(ctx context.Context, step int) (stepper.StepState, error) {
	return s.navigate(ctx, func(n *stepper.Navigator) { n.GoTo(step) })
}

// navigate moves the stepper and saves. A failed save is reported, never
// returned: navigation only fails on a closed session.
func (s *Session) navigate(ctx context.Context, move func(n *stepper.Navigator)) (stepper.StepState, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return stepper.StepState{}, ErrSessionClosed
	}
	move(s.nav)
	s.rec.CurrentStep = s.nav.Current()
	state := s.nav.State()
	s.lastActive = s.now()
	s.mu.Unlock()

	_ = s.Save(ctx)
	return state, nil
}

// Save writes the draft now, cancelling any pending autosave.
func (s *Session) Save(ctx context.Context) error {
	err := s.saver.Flush(ctx)
	if err != nil {
		s.reportSaveError(err)
	}
	return err
}

// Dirty reports whether the in-memory draft differs from the last write.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fingerprint(&s.rec) != s.lastSaved
}

func (s *Session) persist(ctx context.Context) error {
	s.mu.Lock()
	snap := s.snapshotLocked()
	fp := fingerprint(&snap)
	unchanged := fp == s.lastSaved
	s.mu.Unlock()

	if unchanged {
		metrics.DraftAutosaves.WithLabelValues(metrics.AutosaveSkipped).Inc()
		return nil
	}

	if err := s.store.SaveDraft(ctx, &snap); err != nil {
		metrics.DraftAutosaves.WithLabelValues(metrics.AutosaveError).Inc()
		return err
	}

	s.mu.Lock()
	s.lastSaved = fp
	s.rec.CreatedAt = snap.CreatedAt
	s.rec.UpdatedAt = snap.UpdatedAt
	s.mu.Unlock()

	metrics.DraftAutosaves.WithLabelValues(metrics.AutosaveOK).Inc()
	_ = s.publisher.Publish(ctx, events.StreamDrafts, events.Event{
		Type: events.EventDraftSaved,
		Payload: map[string]any{
			"user_id":  snap.OwnerUserID.String(),
			"draft_id": snap.ID.String(),
			"saved_at": snap.UpdatedAt,
		},
	})
	return nil
}

func (s *Session) reportSaveError(err error) {
	s.log.Warn("draft save failed", zap.Error(err))
	_ = s.publisher.Publish(context.Background(), events.StreamDrafts, events.Event{
		Type: events.EventDraftSaveFailed,
		Payload: map[string]any{
			"user_id":  s.rec.OwnerUserID.String(),
			"draft_id": s.rec.ID.String(),
			"error":    "Draft could not be saved, changes will be retried",
		},
	})
}

// beginPublish checks the draft may be published and returns the snapshot
// to publish. Editing continues while the snapshot is submitted.
func (s *Session) beginPublish() (models.DraftRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		return models.DraftRecord{}, ErrSessionClosed
	case s.rec.Status == models.DraftStatusPublished:
		return models.DraftRecord{}, ErrDraftAlreadyPublished
	case s.publishing:
		return models.DraftRecord{}, ErrPublishInProgress
	case !s.nav.CanPublish():
		return models.DraftRecord{}, ErrPublishNotAllowed
	}
	s.publishing = true
	s.lastActive = s.now()
	return s.snapshotLocked(), nil
}

// finishPublish ends a publish attempt. A nil campaignID leaves the draft
// editable.
func (s *Session) finishPublish(campaignID *uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publishing = false
	if campaignID != nil {
		id := *campaignID
		s.rec.Status = models.DraftStatusPublished
		s.rec.PublishedCampaignID = &id
	}
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.publishing && !s.closed && s.lastActive.Before(cutoff)
}

// Close stops autosaving after a final save of any unsaved changes. Once
// closed, mutations fail with ErrSessionClosed. Done is closed after the
// final save returns.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.saver.Stop(ctx, true)
	close(s.done)
	return err
}

func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// fingerprint hashes everything a store persists for the record.
func fingerprint(rec *models.DraftRecord) string {
	data, err := json.Marshal(struct {
		Status      string               `json:"status"`
		Step        int                  `json:"step"`
		PublishedID *uuid.UUID           `json:"published_id"`
		Draft       models.CampaignDraft `json:"draft"`
	}{rec.Status, rec.CurrentStep, rec.PublishedCampaignID, rec.Draft})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
