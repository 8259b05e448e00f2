package chat

import "time"

// Normalize converts a raw backend record into a canonical Message. It is
// total: every canonical field has a fallback, so partial or legacy records
// degrade to defaults instead of producing an error.
//
// Field resolution order, first non-empty wins:
//
//	roomId        RoomId -> fallbackRoomID
//	content       content -> message -> ""
//	senderId      senderId -> id
//	senderName    senderName -> name -> ""
//	senderAvatar  senderAvatar -> avatar -> ""
//	type          type -> "text"
//	status        status -> "sent"
//	createdAt     createdAt -> clock.Now()
//	updatedAt     updatedAt -> resolved createdAt
//
// Records without a parseable createdAt are stamped at normalization time,
// which can misorder a legitimately delayed message relative to concurrent
// ones from other senders. The backend offers no sequence number to do
// better with.
func Normalize(raw RawMessage, fallbackRoomID string, clock Clock) Message {
	createdAt, ok := parseTime(raw["createdAt"])
	if !ok {
		createdAt = clock.Now()
	}

	updatedAt, ok := parseTime(raw["updatedAt"])
	if !ok {
		updatedAt = createdAt
	}

	return Message{
		ID:           raw["id"],
		RoomID:       first(raw["RoomId"], fallbackRoomID),
		Content:      first(raw["content"], raw["message"]),
		SenderID:     first(raw["senderId"], raw["id"]),
		SenderName:   first(raw["senderName"], raw["name"]),
		SenderAvatar: first(raw["senderAvatar"], raw["avatar"]),
		Type:         MessageType(first(raw["type"], string(TypeText))),
		Status:       MessageStatus(first(raw["status"], string(StatusSent))),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// first returns the first non-empty value.
func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
