package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/crist-12/malla-curricular/internal/config"
	"github.com/crist-12/malla-curricular/internal/engine"
	"github.com/crist-12/malla-curricular/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Guide errors.
var (
	ErrGuideNotFound  = errors.New("guide not found")
	ErrNotGuideOwner  = errors.New("not the owner of this guide")
	ErrGuideNotPublic = errors.New("guide is not public")
)

// GuideStore is the persistence boundary for guide aggregates. The production
// implementation is repository.GuideRepository.
type GuideStore interface {
	Create(ctx context.Context, g *model.Guide) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Guide, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Guide, error)
	ListPublic(ctx context.Context) ([]model.PublicGuide, error)
	UpdateSubjects(ctx context.Context, id uuid.UUID, subjects []model.Subject) error
	UpdateTheme(ctx context.Context, id uuid.UUID, theme model.Theme) error
	UpdateVisibility(ctx context.Context, id uuid.UUID, isPublic bool) error
}

// GuideService owns the load → engine → write-back cycle for guide mutations.
// Every mutation replaces the whole subject list; concurrent writers on the
// same guide are last-write-wins (single-owner editing).
type GuideService struct {
	store GuideStore
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewGuideService creates a new GuideService.
func NewGuideService(store GuideStore, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *GuideService {
	ttl := time.Minute
	if cfg != nil {
		ttl = cfg.PublicCacheTTL
	}
	return &GuideService{
		store: store,
		rdb:   rdb,
		ttl:   ttl,
		log:   log.With().Str("component", "guide_service").Logger(),
	}
}

// ListByOwner returns all guides owned by a user.
func (s *GuideService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Guide, error) {
	return s.store.ListByOwner(ctx, ownerID)
}

// Create makes a new empty guide for the owner: private, default theme.
func (s *GuideService) Create(ctx context.Context, ownerID uuid.UUID, req *model.CreateGuideRequest) (*model.Guide, error) {
	if !req.PeriodType.Valid() {
		return nil, engine.ErrUnknownPeriodType
	}
	g := &model.Guide{
		UserID:     ownerID,
		Name:       req.Name,
		University: req.University,
		PeriodType: req.PeriodType,
		Theme:      model.ThemeDefault,
		IsPublic:   false,
		Subjects:   []model.Subject{},
	}
	if err := s.store.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get loads a guide readable by the requester: its owner, or anyone when the
// guide is public.
func (s *GuideService) Get(ctx context.Context, id, requesterID uuid.UUID) (*model.Guide, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != requesterID && !g.IsPublic {
		return nil, ErrNotGuideOwner
	}
	return g, nil
}

// AddSubject appends a subject to an owned guide and persists the updated
// subject list.
func (s *GuideService) AddSubject(ctx context.Context, guideID, ownerID uuid.UUID, in engine.AddSubjectInput) (*model.Subject, error) {
	g, err := s.loadOwned(ctx, guideID, ownerID)
	if err != nil {
		return nil, err
	}

	subject, err := engine.AddSubject(g, in)
	if err != nil {
		return nil, err
	}

	if err := s.store.UpdateSubjects(ctx, guideID, g.Subjects); err != nil {
		return nil, err
	}
	return subject, nil
}

// ChangeSubjectStatus applies a status transition (plus dependent propagation)
// and persists the updated subject list. Returns the full post-change list.
func (s *GuideService) ChangeSubjectStatus(ctx context.Context, guideID, ownerID uuid.UUID, subjectID string, status model.SubjectStatus, score *float64) ([]model.Subject, error) {
	g, err := s.loadOwned(ctx, guideID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := engine.ChangeStatus(g, subjectID, status, score); err != nil {
		return nil, err
	}

	if err := s.store.UpdateSubjects(ctx, guideID, g.Subjects); err != nil {
		return nil, err
	}
	return g.Subjects, nil
}

// SetVisibility flips the public flag and invalidates the public listing cache.
func (s *GuideService) SetVisibility(ctx context.Context, guideID, ownerID uuid.UUID, isPublic bool) error {
	if _, err := s.loadOwned(ctx, guideID, ownerID); err != nil {
		return err
	}
	if err := s.store.UpdateVisibility(ctx, guideID, isPublic); err != nil {
		return err
	}
	s.invalidatePublicCache(ctx)
	return nil
}

// SetTheme changes the guide's visual theme.
func (s *GuideService) SetTheme(ctx context.Context, guideID, ownerID uuid.UUID, theme model.Theme) error {
	if !theme.Valid() {
		return engine.ErrUnknownTheme
	}
	if _, err := s.loadOwned(ctx, guideID, ownerID); err != nil {
		return err
	}
	return s.store.UpdateTheme(ctx, guideID, theme)
}

// ListPublic returns all public guides, served from the Redis cache when warm.
// Redis failures fall through to PostgreSQL and are only logged.
func (s *GuideService) ListPublic(ctx context.Context) ([]model.PublicGuide, error) {
	key := config.CacheKey.PublicGuidesKey()

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var guides []model.PublicGuide
			if jsonErr := json.Unmarshal([]byte(cached), &guides); jsonErr == nil {
				return guides, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("public cache read failed")
		}
	}

	guides, err := s.store.ListPublic(ctx)
	if err != nil {
		return nil, err
	}
	if guides == nil {
		guides = []model.PublicGuide{}
	}

	if s.rdb != nil {
		if data, err := json.Marshal(guides); err == nil {
			if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
				s.log.Warn().Err(err).Msg("public cache write failed")
			}
		}
	}
	return guides, nil
}

// SearchPublic filters a public listing the way the search box does: a
// case-insensitive substring match on university (default), guide name, or the
// owner's country (code or Spanish name). An empty term matches everything.
func SearchPublic(guides []model.PublicGuide, term, by string) []model.PublicGuide {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return guides
	}

	matched := make([]model.PublicGuide, 0, len(guides))
	for _, g := range guides {
		var hit bool
		switch by {
		case "name":
			hit = strings.Contains(strings.ToLower(g.Name), term)
		case "country":
			hit = strings.Contains(strings.ToLower(g.OwnerCountry), term) ||
				strings.Contains(strings.ToLower(model.CountryName(g.OwnerCountry)), term)
		default:
			hit = strings.Contains(strings.ToLower(g.University), term)
		}
		if hit {
			matched = append(matched, g)
		}
	}
	return matched
}

// Clone copies a public guide into the caller's account: new id, private,
// name suffixed with " (Copia)", subjects and theme carried over.
func (s *GuideService) Clone(ctx context.Context, guideID, newOwnerID uuid.UUID) (*model.Guide, error) {
	src, err := s.load(ctx, guideID)
	if err != nil {
		return nil, err
	}
	if !src.IsPublic && src.UserID != newOwnerID {
		return nil, ErrGuideNotPublic
	}

	clone := &model.Guide{
		UserID:     newOwnerID,
		Name:       src.Name + " (Copia)",
		University: src.University,
		PeriodType: src.PeriodType,
		Theme:      src.Theme,
		IsPublic:   false,
		Subjects:   copySubjects(src.Subjects),
	}
	if err := s.store.Create(ctx, clone); err != nil {
		return nil, err
	}
	return clone, nil
}

func copySubjects(subjects []model.Subject) []model.Subject {
	out := make([]model.Subject, len(subjects))
	for i, s := range subjects {
		out[i] = s
		out[i].Prerequisites = append([]string{}, s.Prerequisites...)
		if s.Score != nil {
			v := *s.Score
			out[i].Score = &v
		}
	}
	return out
}

func (s *GuideService) load(ctx context.Context, id uuid.UUID) (*model.Guide, error) {
	g, err := s.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGuideNotFound
		}
		return nil, err
	}
	return g, nil
}

func (s *GuideService) loadOwned(ctx context.Context, id, ownerID uuid.UUID) (*model.Guide, error) {
	g, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.UserID != ownerID {
		return nil, ErrNotGuideOwner
	}
	return g, nil
}

func (s *GuideService) invalidatePublicCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, config.CacheKey.PublicGuidesKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("public cache invalidation failed")
	}
}
