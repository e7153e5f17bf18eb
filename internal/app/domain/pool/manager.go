package pool

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
	"github.com/meet0129/Travion.ai-sub000/internal/app/observability/metrics"
)

// DiscoveryService is the slice of the discovery engine the pool
// manager consumes: category loading and similarity replenishment.
type DiscoveryService interface {
	DiscoverCategories(ctx context.Context, anchor models.GeoAnchor, categories []models.Category, perCategoryCap int) (map[models.Category][]models.PlaceItem, error)
	FindSimilar(ctx context.Context, base models.PlaceItem, exclude map[string]struct{}, limit int) ([]models.PlaceItem, error)
}

// Manager owns the live discovery sessions. Sessions are in-memory
// only and expire after the configured TTL; saved trips live in an
// external store outside this engine.
type Manager struct {
	sessions      *gocache.Cache
	discovery     DiscoveryService
	defaultTarget int
	logger        *zap.Logger
}

func NewManager(discovery DiscoveryService, defaultTarget int, sessionTTL time.Duration, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions:      gocache.New(sessionTTL, sessionTTL/2),
		discovery:     discovery,
		defaultTarget: defaultTarget,
		logger:        logger,
	}
}

// CreateSession starts a discovery session anchored at the given
// destination, optionally seeding the selected set from prior
// preferences.
func (m *Manager) CreateSession(ctx context.Context, anchor models.GeoAnchor, seed []models.PlaceItem) *Session {
	session := newSession(anchor, m.defaultTarget)
	session.mu.Lock()
	for _, item := range seed {
		session.addSelectedLocked(item)
	}
	session.mu.Unlock()

	m.sessions.Set(session.ID.String(), session, gocache.DefaultExpiration)

	m.logger.Info("Discovery session created",
		zap.String("session_id", session.ID.String()),
		zap.String("anchor", anchor.Name),
		zap.Int("seeded", len(seed)))

	mx := metrics.Get()
	mx.PoolOperationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "create")))
	mx.ActiveSessionsGauge.Record(ctx, int64(m.sessions.ItemCount()))

	return session
}

// GetSession looks up a live session by ID.
func (m *Manager) GetSession(sessionID string) (*Session, error) {
	value, found := m.sessions.Get(sessionID)
	if !found {
		return nil, models.ErrSessionNotFound
	}
	return value.(*Session), nil
}

// Seed replaces the selected set with the given items. Inputs are
// assumed caller-deduplicated, but duplicate tokens are dropped
// defensively and any seeded token leaves the suggested set.
func (m *Manager) Seed(ctx context.Context, sessionID string, items []models.PlaceItem) (Snapshot, error) {
	session, err := m.GetSession(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	session.selected = nil
	session.selectedIDs = make(map[string]struct{})
	for _, item := range items {
		session.addSelectedLocked(item)
	}

	metrics.Get().PoolOperationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "seed")))
	return session.snapshotLocked(), nil
}

// LoadSuggestions fills the suggested set from one or more categories
// around the session anchor, excluding everything already selected.
// It replaces the previous suggested set (category switch / "give me
// more" semantics). targetCount <= 0 keeps the current target.
func (m *Manager) LoadSuggestions(ctx context.Context, sessionID string, categories []models.Category, targetCount int) (Snapshot, error) {
	ctx, span := otel.Tracer("PoolManager").Start(ctx, "LoadSuggestions", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.Int("pool.target", targetCount),
	))
	defer span.End()

	session, err := m.GetSession(sessionID)
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		return Snapshot{}, err
	}

	// Fetch enough per category that the mixed pool can still reach
	// the target after dedup and selected-set exclusion.
	perCategoryCap := targetCount
	if perCategoryCap <= 0 {
		perCategoryCap = m.defaultTarget
	}
	byCategory, err := m.discovery.DiscoverCategories(ctx, session.Anchor, categories, perCategoryCap)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Discovery failed")
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if targetCount > 0 {
		session.target = targetCount
	}
	session.suggested = nil
	session.suggestedIDs = make(map[string]struct{})

	// Stable category order keeps reloads deterministic.
	added := 0
	for _, category := range categories {
		for _, item := range byCategory[category] {
			if session.addSuggestedLocked(item) {
				added++
			}
		}
	}

	m.logger.Info("Suggestions loaded",
		zap.String("session_id", sessionID),
		zap.Int("categories", len(categories)),
		zap.Int("suggested", added))

	metrics.Get().PoolOperationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "load")))
	span.SetAttributes(attribute.Int("pool.suggested", added))
	span.SetStatus(codes.Ok, "Suggestions loaded")
	return session.snapshotLocked(), nil
}

// Accept moves a suggested place into the selected set and, when the
// suggested set drops below target, tops it up with places similar to
// the accepted one. A token not currently suggested (stale client,
// double click) fails with ErrNotInPool. Replenishment trouble is
// logged, never surfaced: the accept itself already succeeded.
func (m *Manager) Accept(ctx context.Context, sessionID, placeID string) (Snapshot, error) {
	ctx, span := otel.Tracer("PoolManager").Start(ctx, "Accept", trace.WithAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("place.id", placeID),
	))
	defer span.End()

	session, err := m.GetSession(sessionID)
	if err != nil {
		span.SetStatus(codes.Error, "Session not found")
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	accepted, ok := session.removeSuggestedLocked(placeID)
	if !ok {
		span.SetStatus(codes.Error, "Place not suggested")
		return Snapshot{}, models.ErrNotInPool
	}
	session.selectedIDs[accepted.ID] = struct{}{}
	session.selected = append(session.selected, accepted)

	if shortfall := session.target - len(session.suggested); shortfall > 0 {
		exclude := make(map[string]struct{}, len(session.selectedIDs)+len(session.suggestedIDs))
		for id := range session.selectedIDs {
			exclude[id] = struct{}{}
		}
		for id := range session.suggestedIDs {
			exclude[id] = struct{}{}
		}

		similar, err := m.discovery.FindSimilar(ctx, accepted, exclude, shortfall)
		if err != nil {
			m.logger.Warn("Replenishment failed, pool left short",
				zap.String("session_id", sessionID),
				zap.String("base_id", accepted.ID),
				zap.Error(err))
		}
		for _, item := range similar {
			session.addSuggestedLocked(item)
		}
	}

	m.logger.Info("Place accepted",
		zap.String("session_id", sessionID),
		zap.String("place_id", placeID),
		zap.Int("selected", len(session.selected)),
		zap.Int("suggested", len(session.suggested)))

	metrics.Get().PoolOperationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "accept")))
	span.SetStatus(codes.Ok, "Place accepted")
	return session.snapshotLocked(), nil
}

// Reject drops a place from the suggested set without replenishment:
// "not interested" is not a signal to fetch more like it.
func (m *Manager) Reject(ctx context.Context, sessionID, placeID string) (Snapshot, error) {
	session, err := m.GetSession(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if _, ok := session.removeSuggestedLocked(placeID); !ok {
		return Snapshot{}, models.ErrNotInPool
	}

	metrics.Get().PoolOperationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "reject")))
	return session.snapshotLocked(), nil
}

// RemoveSelected drops a place from the selected set. It neither
// returns the place to the suggested set nor triggers any fetch.
func (m *Manager) RemoveSelected(ctx context.Context, sessionID, placeID string) (Snapshot, error) {
	session, err := m.GetSession(sessionID)
	if err != nil {
		return Snapshot{}, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if _, ok := session.removeSelectedLocked(placeID); !ok {
		return Snapshot{}, models.ErrNotInPool
	}

	metrics.Get().PoolOperationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("op", "remove")))
	return session.snapshotLocked(), nil
}

// Snapshot returns the current pool state of a session.
func (m *Manager) Snapshot(sessionID string) (Snapshot, error) {
	session, err := m.GetSession(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.snapshotLocked(), nil
}
