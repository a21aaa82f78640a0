package memory

import (
	"context"
	"sort"
	"time"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/server/models"
)

type messageRepo struct {
	m *Manager
}

func (r *messageRepo) FindConversation(ctx context.Context, userLowID, userHighID string) (*models.Conversation, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	id, ok := r.m.convPairs[pair{userLowID, userHighID}]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *r.m.convs[id]
	return &out, nil
}

func (r *messageRepo) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	key := pair{conv.UserLowID, conv.UserHighID}
	if _, dup := r.m.convPairs[key]; dup {
		return common.ErrConflict
	}
	if conv.UpdatedAt.IsZero() {
		conv.UpdatedAt = now()
	}
	stored := *conv
	r.m.convs[stored.ID] = &stored
	r.m.convPairs[key] = stored.ID
	return nil
}

func (r *messageRepo) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	c, ok := r.m.convs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (r *messageRepo) TouchConversation(ctx context.Context, id string, at time.Time) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	c, ok := r.m.convs[id]
	if !ok {
		return common.ErrNotFound
	}
	c.UpdatedAt = at
	return nil
}

func (r *messageRepo) ListConversations(ctx context.Context, userID string) ([]models.ConversationView, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	result := []models.ConversationView{}
	for _, c := range r.m.convs {
		var peerID string
		switch userID {
		case c.UserLowID:
			peerID = c.UserHighID
		case c.UserHighID:
			peerID = c.UserLowID
		default:
			continue
		}
		result = append(result, models.ConversationView{
			ID:          c.ID,
			Peer:        r.m.author(peerID),
			LastMessage: r.lastMessage(c.ID),
			UpdatedAt:   c.UpdatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (r *messageRepo) CreateMessage(ctx context.Context, msg *models.Message) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.failed(); err != nil {
		return err
	}

	if _, ok := r.m.convs[msg.ConversationID]; !ok {
		return common.ErrNotFound
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now()
	}
	stored := *msg
	r.m.messages[stored.ID] = &stored
	return nil
}

func (r *messageRepo) ListMessages(ctx context.Context, conversationID string) ([]models.MessageView, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()
	if err := r.m.failed(); err != nil {
		return nil, err
	}

	result := []models.MessageView{}
	for _, msg := range r.m.messages {
		if msg.ConversationID != conversationID {
			continue
		}
		result = append(result, r.view(msg))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// lastMessage returns the newest message of a conversation; caller holds
// at least the read lock.
func (r *messageRepo) lastMessage(conversationID string) *models.MessageView {
	var latest *models.Message
	for _, msg := range r.m.messages {
		if msg.ConversationID != conversationID {
			continue
		}
		if latest == nil || msg.CreatedAt.After(latest.CreatedAt) {
			latest = msg
		}
	}
	if latest == nil {
		return nil
	}
	view := r.view(latest)
	return &view
}

func (r *messageRepo) view(msg *models.Message) models.MessageView {
	return models.MessageView{
		ID:             msg.ID,
		ConversationID: msg.ConversationID,
		Sender:         r.m.author(msg.SenderID),
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}
