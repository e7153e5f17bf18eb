package pool

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meet0129/Travion.ai-sub000/internal/app/models"
)

// Session owns one suggestion pool: the places a user has selected and
// the ones currently on offer. The two sets are disjoint at all times
// and the suggested set never exceeds the target size once an
// operation completes. All mutation goes through the Manager, which
// serializes access with the session mutex.
type Session struct {
	ID        uuid.UUID        `json:"id"`
	Anchor    models.GeoAnchor `json:"anchor"`
	CreatedAt time.Time        `json:"created_at"`

	mu           sync.Mutex
	target       int
	selected     []models.PlaceItem
	selectedIDs  map[string]struct{}
	suggested    []models.PlaceItem
	suggestedIDs map[string]struct{}
}

func newSession(anchor models.GeoAnchor, target int) *Session {
	return &Session{
		ID:           uuid.New(),
		Anchor:       anchor,
		CreatedAt:    time.Now(),
		target:       target,
		selectedIDs:  make(map[string]struct{}),
		suggestedIDs: make(map[string]struct{}),
	}
}

// Snapshot is the caller-visible view of a session's pool.
type Snapshot struct {
	SessionID uuid.UUID          `json:"session_id"`
	Anchor    models.GeoAnchor   `json:"anchor"`
	Selected  []models.PlaceItem `json:"selected"`
	Suggested []models.PlaceItem `json:"suggested"`
	Target    int                `json:"target"`
}

// snapshotLocked copies the pool state; callers hold s.mu.
func (s *Session) snapshotLocked() Snapshot {
	selected := make([]models.PlaceItem, len(s.selected))
	copy(selected, s.selected)
	suggested := make([]models.PlaceItem, len(s.suggested))
	copy(suggested, s.suggested)
	return Snapshot{
		SessionID: s.ID,
		Anchor:    s.Anchor,
		Selected:  selected,
		Suggested: suggested,
		Target:    s.target,
	}
}

// addSelectedLocked appends to the selected set, dropping duplicates
// and evicting the token from the suggested set to keep disjointness.
func (s *Session) addSelectedLocked(item models.PlaceItem) {
	if _, dup := s.selectedIDs[item.ID]; dup {
		return
	}
	s.removeSuggestedLocked(item.ID)
	s.selectedIDs[item.ID] = struct{}{}
	s.selected = append(s.selected, item)
}

// addSuggestedLocked appends to the suggested set unless the token is
// already known anywhere in the pool or the target is reached.
func (s *Session) addSuggestedLocked(item models.PlaceItem) bool {
	if len(s.suggested) >= s.target {
		return false
	}
	if _, dup := s.suggestedIDs[item.ID]; dup {
		return false
	}
	if _, taken := s.selectedIDs[item.ID]; taken {
		return false
	}
	s.suggestedIDs[item.ID] = struct{}{}
	s.suggested = append(s.suggested, item)
	return true
}

func (s *Session) removeSuggestedLocked(placeID string) (models.PlaceItem, bool) {
	if _, ok := s.suggestedIDs[placeID]; !ok {
		return models.PlaceItem{}, false
	}
	delete(s.suggestedIDs, placeID)
	for i, item := range s.suggested {
		if item.ID == placeID {
			s.suggested = append(s.suggested[:i], s.suggested[i+1:]...)
			return item, true
		}
	}
	return models.PlaceItem{}, false
}

func (s *Session) removeSelectedLocked(placeID string) (models.PlaceItem, bool) {
	if _, ok := s.selectedIDs[placeID]; !ok {
		return models.PlaceItem{}, false
	}
	delete(s.selectedIDs, placeID)
	for i, item := range s.selected {
		if item.ID == placeID {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return item, true
		}
	}
	return models.PlaceItem{}, false
}
