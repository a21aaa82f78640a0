// Package messages provides the conversation and message repository.
package messages

import (
	"context"
	"time"

	"github.com/campushub/campushub/internal/server/models"
)

type Repository interface {
	FindConversation(ctx context.Context, userLowID, userHighID string) (*models.Conversation, error)
	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversation(ctx context.Context, id string) (*models.Conversation, error)
	TouchConversation(ctx context.Context, id string, at time.Time) error
	ListConversations(ctx context.Context, userID string) ([]models.ConversationView, error)

	CreateMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]models.MessageView, error)
}

// PairKey orders two participant ids lexically so the store's uniqueness
// constraint covers both directions of a conversation.
func PairKey(a, b string) (low, high string) {
	if a < b {
		return a, b
	}
	return b, a
}
