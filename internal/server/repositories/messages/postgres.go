package messages

import (
	"context"
	"time"

	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/pgerr"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindConversation(ctx context.Context, userLowID, userHighID string) (*models.Conversation, error) {
	query := `
		SELECT id, user_low_id, user_high_id, updated_at
		FROM conversations
		WHERE user_low_id = $1 AND user_high_id = $2
	`
	conv := &models.Conversation{}
	err := r.db.QueryRowContext(ctx, query, userLowID, userHighID).Scan(
		&conv.ID, &conv.UserLowID, &conv.UserHighID, &conv.UpdatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return conv, nil
}

func (r *PostgresRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	query := `
		INSERT INTO conversations (id, user_low_id, user_high_id)
		VALUES ($1, $2, $3)
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, conv.ID, conv.UserLowID, conv.UserHighID).Scan(&conv.UpdatedAt)
	return pgerr.Translate(err)
}

func (r *PostgresRepository) GetConversation(ctx context.Context, id string) (*models.Conversation, error) {
	query := `
		SELECT id, user_low_id, user_high_id, updated_at
		FROM conversations
		WHERE id = $1
	`
	conv := &models.Conversation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&conv.ID, &conv.UserLowID, &conv.UserHighID, &conv.UpdatedAt)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	return conv, nil
}

func (r *PostgresRepository) TouchConversation(ctx context.Context, id string, at time.Time) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE conversations SET updated_at = $2 WHERE id = $1`, id, at); err != nil {
		return pgerr.Translate(err)
	}
	return nil
}

func (r *PostgresRepository) ListConversations(ctx context.Context, userID string) ([]models.ConversationView, error) {
	// The peer is whichever side of the pair is not the caller. The lateral
	// join picks the latest message per thread without a second round-trip.
	query := `
		SELECT c.id, c.updated_at,
		       u.id, u.username, u.name, u.avatar,
		       m.id, m.sender_id, m.content, m.created_at
		FROM conversations c
		JOIN users u
		  ON u.id = CASE WHEN c.user_low_id = $1 THEN c.user_high_id ELSE c.user_low_id END
		LEFT JOIN LATERAL (
			SELECT id, sender_id, content, created_at
			FROM messages
			WHERE conversation_id = c.id
			ORDER BY created_at DESC
			LIMIT 1
		) m ON TRUE
		WHERE c.user_low_id = $1 OR c.user_high_id = $1
		ORDER BY c.updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.ConversationView{}
	for rows.Next() {
		var view models.ConversationView
		var msgID, msgSender, msgContent *string
		var msgAt *time.Time
		if err := rows.Scan(
			&view.ID, &view.UpdatedAt,
			&view.Peer.ID, &view.Peer.Username, &view.Peer.Name, &view.Peer.Avatar,
			&msgID, &msgSender, &msgContent, &msgAt); err != nil {
			return nil, pgerr.Translate(err)
		}
		if msgID != nil {
			view.LastMessage = &models.MessageView{
				ID:             *msgID,
				ConversationID: view.ID,
				Sender:         models.Author{ID: *msgSender},
				Content:        *msgContent,
				CreatedAt:      *msgAt,
			}
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}

func (r *PostgresRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, sender_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.Content).Scan(&msg.CreatedAt)
	return pgerr.Translate(err)
}

func (r *PostgresRepository) ListMessages(ctx context.Context, conversationID string) ([]models.MessageView, error) {
	query := `
		SELECT m.id, m.conversation_id, m.content, m.created_at,
		       u.id, u.username, u.name, u.avatar
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, pgerr.Translate(err)
	}
	defer rows.Close()

	result := []models.MessageView{}
	for rows.Next() {
		var view models.MessageView
		if err := rows.Scan(
			&view.ID, &view.ConversationID, &view.Content, &view.CreatedAt,
			&view.Sender.ID, &view.Sender.Username, &view.Sender.Name, &view.Sender.Avatar); err != nil {
			return nil, pgerr.Translate(err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, pgerr.Translate(err)
	}
	return result, nil
}
