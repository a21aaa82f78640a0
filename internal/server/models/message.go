package models

import "time"

// Conversation is a direct-message thread between exactly two users.
// UserLowID/UserHighID hold the participant pair in lexical order so the
// store's uniqueness constraint covers both directions.
type Conversation struct {
	ID         string
	UserLowID  string
	UserHighID string
	UpdatedAt  time.Time
}

// Message is one direct message inside a conversation.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
	CreatedAt      time.Time
}

// MessageView is a message with its sender embedded.
type MessageView struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	Sender         Author    `json:"sender"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ConversationView is a thread summary for the conversation list.
type ConversationView struct {
	ID          string       `json:"id"`
	Peer        Author       `json:"peer"`
	LastMessage *MessageView `json:"lastMessage,omitempty"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Thread is the payload of GET /api/messages?conversationId=.
type Thread struct {
	Conversation ConversationView `json:"conversation"`
	Messages     []MessageView    `json:"messages"`
}
