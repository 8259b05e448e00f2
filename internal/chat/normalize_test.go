package chat

import (
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeEmptyRecord(t *testing.T) {
	t.Parallel()

	m := Normalize(RawMessage{}, "room-1", fixedClock{testNow})

	require.Equal(t, "", m.ID)
	require.Equal(t, "room-1", m.RoomID)
	require.Equal(t, "", m.Content)
	require.Equal(t, "", m.SenderID)
	require.Equal(t, "", m.SenderName)
	require.Equal(t, "", m.SenderAvatar)
	require.Equal(t, TypeText, m.Type)
	require.Equal(t, StatusSent, m.Status)
	require.Equal(t, testNow, m.CreatedAt)
	require.Equal(t, testNow, m.UpdatedAt)
}

func TestNormalizeContentPrecedence(t *testing.T) {
	t.Parallel()

	m := Normalize(RawMessage{
		"content": "canonical",
		"message": "legacy",
	}, "room-1", fixedClock{testNow})
	require.Equal(t, "canonical", m.Content)

	m = Normalize(RawMessage{"message": "legacy"}, "room-1", fixedClock{testNow})
	require.Equal(t, "legacy", m.Content)
}

func TestNormalizeSenderVariants(t *testing.T) {
	t.Parallel()

	m := Normalize(RawMessage{
		"id":         "m1",
		"senderName": "Alice",
		"name":       "ignored",
		"avatar":     "https://cdn/a.png",
	}, "room-1", fixedClock{testNow})

	require.Equal(t, "Alice", m.SenderName)
	require.Equal(t, "https://cdn/a.png", m.SenderAvatar)
	// senderId falls back to the record id
	require.Equal(t, "m1", m.SenderID)

	m = Normalize(RawMessage{
		"senderId": "u7",
		"name":     "Bob",
	}, "room-1", fixedClock{testNow})

	require.Equal(t, "u7", m.SenderID)
	require.Equal(t, "Bob", m.SenderName)
}

func TestNormalizeRoomIDVariant(t *testing.T) {
	t.Parallel()

	m := Normalize(RawMessage{"RoomId": "room-9"}, "room-1", fixedClock{testNow})
	require.Equal(t, "room-9", m.RoomID)
}

func TestNormalizeTimestamps(t *testing.T) {
	t.Parallel()

	m := Normalize(RawMessage{
		"createdAt": "2024-01-01T00:00:00Z",
		"updatedAt": "2024-01-02T00:00:00Z",
	}, "room-1", fixedClock{testNow})

	require.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), m.CreatedAt)
	require.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), m.UpdatedAt)

	// updatedAt falls back to the resolved createdAt
	m = Normalize(RawMessage{"createdAt": "2024-01-01T00:00:00Z"}, "room-1", fixedClock{testNow})
	require.Equal(t, m.CreatedAt, m.UpdatedAt)

	// unparseable createdAt degrades to the clock value
	m = Normalize(RawMessage{"createdAt": "yesterday"}, "room-1", fixedClock{testNow})
	require.Equal(t, testNow, m.CreatedAt)
}

func TestNormalizeMissingCreatedAtUsesNow(t *testing.T) {
	t.Parallel()

	before := time.Now()
	m := Normalize(RawMessage{"content": "hi"}, "room-1", SystemClock())
	after := time.Now()

	require.False(t, m.CreatedAt.Before(before))
	require.False(t, m.CreatedAt.After(after))
}

func TestNormalizeTypeAndStatusKept(t *testing.T) {
	t.Parallel()

	m := Normalize(RawMessage{
		"type":   "image",
		"status": "read",
	}, "room-1", fixedClock{testNow})

	require.Equal(t, TypeImage, m.Type)
	require.Equal(t, StatusRead, m.Status)
}
