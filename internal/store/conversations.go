package store

import (
	"fmt"
	"time"

	"github.com/xonecas/catnip/internal/chat"
)

// SaveConversations persists a full snapshot of the conversation list,
// replacing whatever was stored before. Called on shutdown; streaming flags
// are not persisted (a restored conversation is never mid-stream).
func (s *Store) SaveConversations(conversations []*chat.Conversation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM messages"); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM conversations"); err != nil {
		return fmt.Errorf("clear conversations: %w", err)
	}

	now := time.Now().UTC()
	for pos, conv := range conversations {
		_, err := tx.Exec(`
			INSERT INTO conversations (id, title, model, position, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, conv.ID, conv.Title, conv.Model, pos, now, now)
		if err != nil {
			return fmt.Errorf("insert conversation: %w", err)
		}

		for mpos, msg := range conv.Messages {
			_, err := tx.Exec(`
				INSERT INTO messages (conversation_id, position, role, content)
				VALUES (?, ?, ?, ?)
			`, conv.ID, mpos, string(msg.Role), msg.Content)
			if err != nil {
				return fmt.Errorf("insert message: %w", err)
			}
		}
	}

	return tx.Commit()
}

// LoadConversations restores the persisted snapshot in saved order. Code
// blocks are re-extracted on load since they are derived data.
func (s *Store) LoadConversations() ([]*chat.Conversation, error) {
	rows, err := s.db.Query(`
		SELECT id, title, model FROM conversations ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*chat.Conversation
	for rows.Next() {
		conv := &chat.Conversation{}
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.Model); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, conv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}

	for _, conv := range conversations {
		msgs, err := s.loadMessages(conv.ID)
		if err != nil {
			return nil, err
		}
		conv.Messages = msgs
		for idx, m := range msgs {
			conv.SetBlocks(idx, chat.ExtractBlocks(m.Content))
		}
	}

	return conversations, nil
}

func (s *Store) loadMessages(conversationID string) ([]chat.Message, error) {
	rows, err := s.db.Query(`
		SELECT role, content FROM messages
		WHERE conversation_id = ? ORDER BY position ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, chat.Message{Role: chat.Role(role), Content: content})
	}
	return msgs, rows.Err()
}
