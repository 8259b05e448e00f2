package chat

import (
	"context"
	"errors"
	"go.uber.org/zap"
	"strings"
	"sync"
)

var (
	ErrRoomFetchFailed     = errors.New("room-fetch-failed")
	ErrMessagesFetchFailed = errors.New("messages-fetch-failed")
	ErrSendFailed          = errors.New("send-failed")
	ErrRoomsFetchFailed    = errors.New("rooms-fetch-failed")
	ErrLoadInFlight        = errors.New("load already in flight")
	ErrSendInFlight        = errors.New("send already in flight")
	ErrSessionClosed       = errors.New("room session closed")
)

// Phase is the synchronizer's lifecycle state for one room session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// API is the subset of the REST client consumed by Synchronizer.
type API interface {
	GetRoom(ctx context.Context, id string) (Room, error)
	GetMessages(ctx context.Context, roomID string) ([]RawMessage, error)
	AddMessage(ctx context.Context, msg OutgoingMessage, roomID string) (RawMessage, error)
}

// Synchronizer owns the in-memory message timeline for one room session. It
// performs the initial load, merges normalized messages into a stable
// chronological order and appends optimistically on send. Create one when
// entering a room and Close it on exit; a new room gets a new Synchronizer.
type Synchronizer struct {
	logger *zap.SugaredLogger
	api    API
	clock  Clock
	roomID string

	mu           sync.Mutex
	room         *Room
	timeline     []Message
	phase        Phase
	lastErr      error
	loading      bool
	sendInFlight bool
	closed       bool
	// generation guards against responses arriving after Close or after a
	// newer Load has replaced the session state
	generation int
}

// SyncOption alters the default configuration of a Synchronizer.
type SyncOption interface {
	apply(*Synchronizer)
}

type syncOptionFunc func(*Synchronizer)

func (f syncOptionFunc) apply(s *Synchronizer) { f(s) }

// WithClock replaces the wall clock used for normalization defaults and
// outgoing timestamps.
func WithClock(c Clock) SyncOption {
	return syncOptionFunc(func(s *Synchronizer) {
		s.clock = c
	})
}

// NewSynchronizer returns a Synchronizer for roomID backed by the provided
// REST collaborator.
func NewSynchronizer(logger *zap.SugaredLogger, api API, roomID string, opts ...SyncOption) *Synchronizer {
	s := &Synchronizer{
		logger: logger,
		api:    api,
		clock:  SystemClock(),
		roomID: roomID,
		phase:  PhaseIdle,
	}

	for _, opt := range opts {
		opt.apply(s)
	}

	return s
}

// Load fetches the room and its message list, replacing any prior timeline
// wholesale. Repeating Load after a failure is the retry path; nothing
// retries automatically. A Load overlapping another returns ErrLoadInFlight
// without touching state.
func (s *Synchronizer) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.loading {
		s.mu.Unlock()
		return ErrLoadInFlight
	}
	s.loading = true
	s.generation++
	gen := s.generation
	s.phase = PhaseLoading
	s.lastErr = nil
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	s.logger.Debugf("Loading room %s", s.roomID)

	room, err := s.api.GetRoom(ctx, s.roomID)
	if err != nil {
		s.logger.Debugf("Room fetch for %s failed: %v", s.roomID, err)
		s.fail(gen, ErrRoomFetchFailed)
		return ErrRoomFetchFailed
	}

	// room metadata is recorded before the message fetch so an error view
	// can still show room context when only the messages fail
	s.mu.Lock()
	if gen == s.generation {
		s.room = &room
	}
	s.mu.Unlock()

	raws, err := s.api.GetMessages(ctx, s.roomID)
	if err != nil {
		s.logger.Debugf("Message fetch for %s failed: %v", s.roomID, err)
		s.fail(gen, ErrMessagesFetchFailed)
		return ErrMessagesFetchFailed
	}

	msgs := make([]Message, 0, len(raws))
	for _, raw := range raws {
		msgs = append(msgs, Normalize(raw, s.roomID, s.clock))
	}
	SortByCreatedAt(msgs)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrSessionClosed
	}
	s.timeline = msgs
	s.phase = PhaseReady

	s.logger.Debugf("Room %s ready with %d messages", s.roomID, len(msgs))

	return nil
}

// Send submits a draft and appends the backend's echoed record to the
// timeline. A blank draft (after trimming) or missing sender identity is a
// silent no-op, mirroring a disabled send button upstream. The echoed record
// is appended without re-sorting: the backend stamps new messages at or
// after every existing entry, so a full re-sort per send is avoided. A
// backend violating that assumption leaves the timeline unsorted.
func (s *Synchronizer) Send(ctx context.Context, draft, senderID, senderName string) error {
	if strings.TrimSpace(draft) == "" || s.roomID == "" || senderID == "" || senderName == "" {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.sendInFlight {
		s.mu.Unlock()
		return ErrSendInFlight
	}
	s.sendInFlight = true
	gen := s.generation
	s.mu.Unlock()

	// the release must be unconditional
	defer func() {
		s.mu.Lock()
		s.sendInFlight = false
		s.mu.Unlock()
	}()

	out := OutgoingMessage{
		Content:    draft,
		SenderID:   senderID,
		SenderName: senderName,
		Type:       TypeText,
		Status:     StatusSent,
		Message:    draft,
		Name:       senderName,
		CreatedAt:  s.clock.Now(),
	}

	raw, err := s.api.AddMessage(ctx, out, s.roomID)
	if err != nil {
		s.logger.Debugf("Send to room %s failed: %v", s.roomID, err)
		s.mu.Lock()
		if gen == s.generation {
			s.lastErr = ErrSendFailed
		}
		s.mu.Unlock()
		return ErrSendFailed
	}

	msg := Normalize(raw, s.roomID, s.clock)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return ErrSessionClosed
	}
	s.timeline = append(s.timeline, msg)

	s.logger.Debugf("Appended message %s to room %s", msg.ID, s.roomID)

	return nil
}

// Close ends the room session. Responses still in flight are dropped instead
// of being applied to the dead timeline.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.generation++
	s.room = nil
	s.timeline = nil
	s.phase = PhaseIdle
	s.lastErr = nil
}

// Timeline returns a copy of the current chronological message order.
func (s *Synchronizer) Timeline() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.timeline))
	copy(out, s.timeline)
	return out
}

// Room returns the fetched room metadata and whether any has been fetched.
// Metadata survives a failed message fetch.
func (s *Synchronizer) Room() (Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.room == nil {
		return Room{}, false
	}
	return *s.room, true
}

// Phase returns the current lifecycle state.
func (s *Synchronizer) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Err returns the most recent operation failure. A successful Load clears
// it; a failed Send sets it without demoting a Ready timeline.
func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Synchronizer) fail(gen int, reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return
	}
	s.phase = PhaseFailed
	s.lastErr = reason
}
