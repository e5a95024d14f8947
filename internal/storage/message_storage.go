package storage

import (
	"context"
	"fmt"
	"slices"
	"time"

	"RealEgo_Backend/internal/models"
)

func (db *DB) AppendMessage(ctx context.Context, userID int64, role models.Role, content string) (*models.ChatMessage, error) {
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	msg := &models.ChatMessage{UserID: userID, Role: role, Content: content, Timestamp: db.now()}

	err := db.QueryRowContext(ctx,
		db.rebind(`INSERT INTO chat_messages(user_id, role, content, created_at) VALUES(?, ?, ?, ?) RETURNING id`),
		userID, string(role), content, msg.Timestamp.UnixNano(),
	).Scan(&msg.ID)
	if err != nil {
		return nil, fmt.Errorf("insert chat message: %w", err)
	}
	return msg, nil
}

// ListRecentMessages returns the newest limit messages, oldest first.
func (db *DB) ListRecentMessages(ctx context.Context, userID int64, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = models.DefaultHistoryLimit
	}
	query := `
		SELECT id, user_id, role, content, created_at
		FROM chat_messages
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	rows, err := db.QueryContext(ctx, db.rebind(query), userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query chat messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.ChatMessage, 0, min(limit, 256))
	for rows.Next() {
		var m models.ChatMessage
		var role string
		var createdAt int64
		if err := rows.Scan(&m.ID, &m.UserID, &role, &m.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		m.Role = models.Role(role)
		m.Timestamp = time.Unix(0, createdAt)
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chat messages: %w", err)
	}

	// DESC 로 가져온 결과를 시간순으로 뒤집음
	slices.Reverse(messages)
	return messages, nil
}
