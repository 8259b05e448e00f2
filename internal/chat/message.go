package chat

import "time"

// MessageType classifies message content.
type MessageType string

const (
	TypeText  MessageType = "text"
	TypeImage MessageType = "image"
	TypeVideo MessageType = "video"
	TypeAudio MessageType = "audio"
	TypeFile  MessageType = "file"
)

// MessageStatus is the delivery state reported by the backend.
type MessageStatus string

const (
	StatusSent      MessageStatus = "sent"
	StatusDelivered MessageStatus = "delivered"
	StatusRead      MessageStatus = "read"
)

// Room mirrors the backend room record. The backend owns rooms; this package
// only reads them.
type Room struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	LastMessage     string    `json:"lastMessage,omitempty"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     uint      `json:"unreadCount,omitempty"`
	Participants    []string  `json:"participants,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Message is the canonical message shape consumed by all ordering and
// rendering logic. Raw backend records become Messages via Normalize.
type Message struct {
	ID           string        `json:"id"`
	RoomID       string        `json:"roomId"`
	Content      string        `json:"content"`
	SenderID     string        `json:"senderId"`
	SenderName   string        `json:"senderName"`
	SenderAvatar string        `json:"senderAvatar"`
	Type         MessageType   `json:"type"`
	Status       MessageStatus `json:"status"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// RawMessage is an untyped backend message record. Field naming is not
// consistent between endpoints and backend versions (content vs message,
// senderName vs name, senderAvatar vs avatar, RoomId vs the route's room id),
// so the record stays a permissive key-value lookup until Normalize resolves
// the variants once, at the boundary.
type RawMessage map[string]string

// OutgoingMessage is the payload submitted on send. The duplicated
// message/name fields mirror the backend's legacy naming so either reader
// accepts the record. CreatedAt is a client-side hint; the timestamp echoed
// by the backend is the one used locally.
type OutgoingMessage struct {
	Content    string        `json:"content"`
	SenderID   string        `json:"senderId"`
	SenderName string        `json:"senderName"`
	Type       MessageType   `json:"type"`
	Status     MessageStatus `json:"status"`
	Message    string        `json:"message"`
	Name       string        `json:"name"`
	CreatedAt  time.Time     `json:"createdAt"`
}
