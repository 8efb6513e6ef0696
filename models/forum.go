package models

import "time"

const DefaultThreadCategory = "General"

type Reply struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	User      string    `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type Thread struct {
	ID         string    `json:"id"`
	User       string    `json:"user"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	ReplyCount int       `json:"reply_count"`
	Replies    []Reply   `json:"replies,omitempty"`
}

type ThreadFilter struct {
	Category string
	Search   string
	Skip     int
	Limit    int
}

type CreateThreadRequest struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type CreateReplyRequest struct {
	Content string `json:"content"`
}

// ForumEvent is pushed to WebSocket subscribers of the forum feed.
type ForumEvent struct {
	Type     string `json:"type"`
	ThreadID string `json:"thread_id"`
	User     string `json:"user"`
	Title    string `json:"title,omitempty"`
	ReplyID  string `json:"reply_id,omitempty"`
}

const (
	EventThreadCreated = "thread_created"
	EventThreadDeleted = "thread_deleted"
	EventReplyAdded    = "reply_added"
)
