package chat

import (
	"context"
	"go.uber.org/zap"
	"sync"
)

// RoomLister is the subset of the REST client consumed by Roster.
type RoomLister interface {
	GetRooms(ctx context.Context) ([]Room, error)
}

// Roster holds the fetched room list for the rooms view. Refresh replaces
// the list wholesale; there is no merging or caching between refreshes.
type Roster struct {
	logger *zap.SugaredLogger
	api    RoomLister

	mu      sync.Mutex
	rooms   []Room
	lastErr error
}

// NewRoster returns a Roster backed by the provided REST collaborator.
func NewRoster(logger *zap.SugaredLogger, api RoomLister) *Roster {
	return &Roster{
		logger: logger,
		api:    api,
	}
}

// Refresh fetches the room list. On failure the previous list is kept.
func (r *Roster) Refresh(ctx context.Context) error {
	rooms, err := r.api.GetRooms(ctx)
	if err != nil {
		r.logger.Debugf("Room list fetch failed: %v", err)
		r.mu.Lock()
		r.lastErr = ErrRoomsFetchFailed
		r.mu.Unlock()
		return ErrRoomsFetchFailed
	}

	r.mu.Lock()
	r.rooms = rooms
	r.lastErr = nil
	r.mu.Unlock()

	r.logger.Debugf("Fetched %d rooms", len(rooms))

	return nil
}

// Rooms returns a copy of the most recently fetched room list.
func (r *Roster) Rooms() []Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Room, len(r.rooms))
	copy(out, r.rooms)
	return out
}

// Err returns the most recent refresh failure, nil after a successful one.
func (r *Roster) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}
