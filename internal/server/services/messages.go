package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campushub/internal/common"
	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/messages"
)

// MessageService implements direct messages. A conversation is keyed by the
// lexically ordered participant pair, so the same thread is found no matter
// which side starts it.
type MessageService struct {
	*Store
}

func NewMessageService(store *Store) *MessageService {
	return &MessageService{Store: store}
}

// Conversations lists the caller's threads, most recently active first.
func (s *MessageService) Conversations(ctx context.Context, userID string) (facade.Result[[]models.ConversationView], error) {
	return facade.Read(ctx, s.Facade, "messages.conversations",
		func(ctx context.Context) ([]models.ConversationView, error) {
			return s.Primary.Messages(s.DB).ListConversations(ctx, userID)
		},
	)
}

// Thread returns one conversation with its messages, oldest first. Callers
// outside the participant pair are denied.
func (s *MessageService) Thread(ctx context.Context, userID, conversationID string) (facade.Result[*models.Thread], error) {
	return facade.Read(ctx, s.Facade, "messages.thread",
		func(ctx context.Context) (*models.Thread, error) {
			conv, err := s.Primary.Messages(s.DB).GetConversation(ctx, conversationID)
			if err != nil {
				return nil, err
			}
			peerID, ok := peerOf(conv, userID)
			if !ok {
				return nil, common.ErrForbidden
			}

			msgs, err := s.Primary.Messages(s.DB).ListMessages(ctx, conversationID)
			if err != nil {
				return nil, err
			}

			peer, err := s.Primary.Users(s.DB).GetByID(ctx, peerID)
			if err != nil {
				return nil, err
			}
			view := models.ConversationView{
				ID:        conv.ID,
				Peer:      models.Author{ID: peer.ID, Username: peer.Username, Name: peer.Name, Avatar: peer.Avatar},
				UpdatedAt: conv.UpdatedAt,
			}
			if len(msgs) > 0 {
				last := msgs[len(msgs)-1]
				view.LastMessage = &last
			}
			return &models.Thread{Conversation: view, Messages: msgs}, nil
		},
	)
}

// Send delivers a message to a recipient, creating the conversation on
// first contact. The find-or-create and the message insert run in one
// transaction; a create race resolves by re-finding the winner's thread.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID, content string) (*models.MessageView, error) {
	view, err := facade.Write(ctx, s.Facade, "messages.send", func(ctx context.Context) (*models.MessageView, error) {
		recipient, err := s.Primary.Users(s.DB).GetByID(ctx, recipientID)
		if err != nil {
			return nil, err
		}
		sender, err := s.Primary.Users(s.DB).GetByID(ctx, senderID)
		if err != nil {
			return nil, err
		}

		msg := &models.Message{
			ID:       uuid.NewString(),
			SenderID: senderID,
			Content:  content,
		}
		err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
			repo := s.Primary.Messages(tx)
			conv, err := s.findOrCreateConversation(ctx, repo, senderID, recipient.ID)
			if err != nil {
				return err
			}
			msg.ConversationID = conv.ID
			if err := repo.CreateMessage(ctx, msg); err != nil {
				return err
			}
			return repo.TouchConversation(ctx, conv.ID, time.Now())
		})
		if err != nil {
			return nil, err
		}

		return &models.MessageView{
			ID:             msg.ID,
			ConversationID: msg.ConversationID,
			Sender:         models.Author{ID: sender.ID, Username: sender.Username, Name: sender.Name, Avatar: sender.Avatar},
			Content:        msg.Content,
			CreatedAt:      msg.CreatedAt,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.notify(ctx, recipientID, senderID, models.NotificationMessage, view.ConversationID, "sent you a message")
	return view, nil
}

func (s *MessageService) findOrCreateConversation(ctx context.Context, repo messages.Repository, a, b string) (*models.Conversation, error) {
	low, high := messages.PairKey(a, b)
	conv, err := repo.FindConversation(ctx, low, high)
	if err == nil {
		return conv, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	conv = &models.Conversation{ID: uuid.NewString(), UserLowID: low, UserHighID: high}
	switch err := repo.CreateConversation(ctx, conv); {
	case err == nil:
		return conv, nil
	case errors.Is(err, common.ErrConflict):
		return repo.FindConversation(ctx, low, high)
	default:
		return nil, err
	}
}

func peerOf(conv *models.Conversation, userID string) (string, bool) {
	switch userID {
	case conv.UserLowID:
		return conv.UserHighID, true
	case conv.UserHighID:
		return conv.UserLowID, true
	default:
		return "", false
	}
}
