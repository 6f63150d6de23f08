package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/creator-marketplace/backend/internal/autosave"
	"github.com/creator-marketplace/backend/internal/events"
	"github.com/creator-marketplace/backend/internal/metrics"
	"github.com/creator-marketplace/backend/internal/models"
	"github.com/creator-marketplace/backend/internal/preview"
	"github.com/creator-marketplace/backend/internal/repositories"
	"github.com/creator-marketplace/backend/internal/stepper"
	"github.com/creator-marketplace/backend/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DraftServiceConfig struct {
	AutosaveDelay time.Duration
	DeadlineDays  int
	IdleTimeout   time.Duration
}

// DraftView is a draft together with its stepper state and current
// field-level input errors.
type DraftView struct {
	Draft  models.DraftRecord      `json:"draft"`
	Steps  stepper.StepState       `json:"steps"`
	Errors []validation.FieldError `json:"errors"`
}

type DraftService struct {
	drafts    DraftStore
	campaigns CampaignStore
	audit     AuditLogger
	publisher events.Publisher
	cfg       DraftServiceConfig
	log       *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewDraftService(
	drafts DraftStore,
	campaigns CampaignStore,
	audit AuditLogger,
	publisher events.Publisher,
	cfg DraftServiceConfig,
	log *zap.Logger,
) *DraftService {
	if cfg.AutosaveDelay <= 0 {
		cfg.AutosaveDelay = autosave.DefaultDelay
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 30 * time.Minute
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &DraftService{
		drafts:    drafts,
		campaigns: campaigns,
		audit:     audit,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Create starts a new draft with default values. The draft is returned even
// if the first save fails; the next save retries it.
func (s *DraftService) Create(ctx context.Context, ownerID uuid.UUID) (*DraftView, error) {
	now := s.now()
	rec := &models.DraftRecord{
		ID:          uuid.New(),
		OwnerUserID: ownerID,
		Status:      models.DraftStatusEditing,
		CurrentStep: stepper.FirstStep,
		Draft:       models.NewCampaignDraft(now, s.cfg.DeadlineDays),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	sess := newSession(rec, false, s.drafts, s.publisher, s.cfg.AutosaveDelay, s.now, s.log)
	s.mu.Lock()
	s.sessions[rec.ID] = sess
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	if err := sess.Save(ctx); err != nil {
		s.log.Warn("initial draft save failed", zap.String("draft_id", rec.ID.String()), zap.Error(err))
	}

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &ownerID,
		ActorType:   "brand",
		Action:      models.AuditActionDraftCreated,
		EntityType:  "draft",
		EntityID:    &rec.ID,
	})

	return s.view(sess), nil
}

// session returns the live session for the draft, loading it on first use.
// A session being closed is waited out so the reload sees its final save.
// Drafts owned by someone else are reported as not found.
func (s *DraftService) session(ctx context.Context, id, userID uuid.UUID) (*Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	s.mu.Unlock()

	if ok && sess.isClosed() {
		select {
		case <-sess.Done():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.forget(sess)
		ok = false
	}

	if !ok {
		rec, err := s.drafts.GetDraft(ctx, id)
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load draft: %w", err)
		}

		s.mu.Lock()
		if existing, loaded := s.sessions[id]; loaded {
			sess = existing
		} else {
			sess = newSession(rec, true, s.drafts, s.publisher, s.cfg.AutosaveDelay, s.now, s.log)
			s.sessions[id] = sess
			metrics.ActiveSessions.Set(float64(len(s.sessions)))
		}
		s.mu.Unlock()
	}

	if sess.OwnerID() != userID {
		return nil, ErrDraftNotFound
	}
	return sess, nil
}

// withSession runs fn on the draft's session. If eviction closed the
// session in between, fn is retried once on a fresh load.
func (s *DraftService) withSession(ctx context.Context, id, userID uuid.UUID, fn func(sess *Session) error) (*Session, error) {
	for attempt := 0; ; attempt++ {
		sess, err := s.session(ctx, id, userID)
		if err != nil {
			return nil, err
		}
		err = fn(sess)
		if errors.Is(err, ErrSessionClosed) && attempt == 0 {
			continue
		}
		if err != nil {
			return nil, err
		}
		return sess, nil
	}
}

// forget drops sess from the registry unless it was already replaced.
func (s *DraftService) forget(sess *Session) {
	s.mu.Lock()
	if s.sessions[sess.ID()] == sess {
		delete(s.sessions, sess.ID())
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()
}

func (s *DraftService) view(sess *Session) *DraftView {
	rec := sess.Snapshot()
	errs := validation.Validate(&rec.Draft, validation.ModeInteractive)
	if errs == nil {
		errs = []validation.FieldError{}
	}
	return &DraftView{Draft: rec, Steps: sess.Steps(), Errors: errs}
}

func (s *DraftService) Get(ctx context.Context, id, userID uuid.UUID) (*DraftView, error) {
	sess, err := s.session(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Update applies field changes and schedules an autosave. Input errors are
// returned in the view, they never reject the change.
func (s *DraftService) Update(ctx context.Context, id, userID uuid.UUID, mutate func(d *models.CampaignDraft)) (*DraftView, error) {
	sess, err := s.withSession(ctx, id, userID, func(sess *Session) error {
		_, err := sess.Update(mutate)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

// Save writes the draft immediately. The error is informational: the
// session stays editable and the next save retries.
func (s *DraftService) Save(ctx context.Context, id, userID uuid.UUID) (*DraftView, error) {
	sess, err := s.session(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	saveErr := sess.Save(ctx)
	return s.view(sess), saveErr
}

func (s *DraftService) NextStep(ctx context.Context, id, userID uuid.UUID) (*DraftView, error) {
	sess, err := s.withSession(ctx, id, userID, func(sess *Session) error {
		_, err := sess.Next(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *DraftService) PreviousStep(ctx context.Context, id, userID uuid.UUID) (*DraftView, error) {
	sess, err := s.withSession(ctx, id, userID, func(sess *Session) error {
		_, err := sess.Previous(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *DraftService) GoToStep(ctx context.Context, id, userID uuid.UUID, step int) (*DraftView, error) {
	sess, err := s.withSession(ctx, id, userID, func(sess *Session) error {
		_, err := sess.GoTo(ctx, step)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(sess), nil
}

func (s *DraftService) Validate(ctx context.Context, id, userID uuid.UUID, mode validation.Mode) ([]validation.FieldError, error) {
	sess, err := s.session(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	errs := sess.Validate(mode)
	if errs == nil {
		errs = []validation.FieldError{}
	}
	return errs, nil
}

func (s *DraftService) Preview(ctx context.Context, id, userID uuid.UUID) (*preview.Preview, error) {
	sess, err := s.session(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	rec := sess.Snapshot()
	p := preview.Build(&rec.Draft, s.now())
	return &p, nil
}

// History lists the draft's audit trail, newest first.
func (s *DraftService) History(ctx context.Context, id, userID uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	if _, err := s.session(ctx, id, userID); err != nil {
		return nil, err
	}
	logs, err := s.audit.GetByEntity(ctx, "draft", id, limit, offset)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	return logs, nil
}

// Publish validates the whole draft and, when it passes, writes the campaign
// to the system of record and marks the draft published. On any failure the
// draft stays editable.
func (s *DraftService) Publish(ctx context.Context, id, userID uuid.UUID) (*models.Campaign, error) {
	var snap models.DraftRecord
	sess, err := s.withSession(ctx, id, userID, func(sess *Session) error {
		var err error
		snap, err = sess.beginPublish()
		return err
	})
	if err != nil {
		return nil, err
	}

	if errs := validation.Validate(&snap.Draft, validation.ModePublish); len(errs) > 0 {
		sess.finishPublish(nil)
		for _, fe := range errs {
			metrics.DraftValidationErrors.WithLabelValues(validation.BaseField(fe.Field)).Inc()
		}
		return nil, &ValidationError{Errors: errs}
	}

	campaign := models.NewCampaignFromDraft(&snap, s.now())
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			s.markPublished(ctx, sess)
			return nil, ErrDraftAlreadyPublished
		}
		sess.finishPublish(nil)
		s.log.Error("campaign publish failed", zap.String("draft_id", id.String()), zap.Error(err))
		_ = s.publisher.Publish(ctx, events.StreamDrafts, events.Event{
			Type: events.EventPublishFailed,
			Payload: map[string]any{
				"user_id":  userID.String(),
				"draft_id": id.String(),
			},
		})
		return nil, fmt.Errorf("%w: %v", ErrPublishFailed, err)
	}

	sess.finishPublish(&campaign.ID)
	if err := sess.Save(ctx); err != nil {
		s.log.Warn("published draft not saved", zap.String("draft_id", id.String()), zap.Error(err))
	}

	metrics.CampaignsPublished.Inc()
	_ = s.audit.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "brand",
		Action:      models.AuditActionDraftPublished,
		EntityType:  "draft",
		EntityID:    &snap.ID,
		Meta:        map[string]any{"campaign_id": campaign.ID.String()},
	})
	_ = s.publisher.Publish(ctx, events.StreamDrafts, events.Event{
		Type: events.EventCampaignPublished,
		Payload: map[string]any{
			"user_id":     userID.String(),
			"draft_id":    id.String(),
			"campaign_id": campaign.ID.String(),
		},
	})

	s.log.Info("campaign published",
		zap.String("draft_id", id.String()),
		zap.String("campaign_id", campaign.ID.String()),
	)
	return campaign, nil
}

// markPublished brings a draft in line with a campaign that was already
// recorded for it, e.g. when the status save after an earlier publish failed.
func (s *DraftService) markPublished(ctx context.Context, sess *Session) {
	existing, err := s.campaigns.GetByDraftID(ctx, sess.ID())
	if err != nil {
		sess.finishPublish(nil)
		s.log.Warn("published campaign lookup failed", zap.String("draft_id", sess.ID().String()), zap.Error(err))
		return
	}
	sess.finishPublish(&existing.ID)
	if err := sess.Save(ctx); err != nil {
		s.log.Warn("published draft not saved", zap.String("draft_id", sess.ID().String()), zap.Error(err))
	}
}

// EvictIdle closes sessions untouched since the idle timeout and drops them
// from memory. It returns the number evicted.
func (s *DraftService) EvictIdle(ctx context.Context) int {
	cutoff := s.now().Add(-s.cfg.IdleTimeout)

	s.mu.Lock()
	var idle []*Session
	for _, sess := range s.sessions {
		if sess.idleSince(cutoff) {
			idle = append(idle, sess)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		if err := sess.Close(ctx); err != nil {
			s.log.Warn("final save of idle draft failed", zap.String("draft_id", sess.ID().String()), zap.Error(err))
		}
		s.forget(sess)
	}
	return len(idle)
}

// Run evicts idle sessions until ctx is done, then closes the rest.
func (s *DraftService) Run(ctx context.Context) {
	interval := s.cfg.IdleTimeout / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.EvictIdle(ctx); n > 0 {
				s.log.Info("evicted idle drafts", zap.Int("count", n))
			}
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			s.Shutdown(shutdownCtx)
			cancel()
			return
		}
	}
}

// Shutdown flushes and closes every open session.
func (s *DraftService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	open := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		open = append(open, sess)
	}
	s.mu.Unlock()

	for _, sess := range open {
		if err := sess.Close(ctx); err != nil {
			s.log.Warn("final draft save failed", zap.String("draft_id", sess.ID().String()), zap.Error(err))
		}
		s.forget(sess)
	}
}
