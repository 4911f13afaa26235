package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/timecapsule/timecapsule/internal/domain"
)

// SQLiteStore implements Store using SQLite. It is the durable backend
// substitutable for the in-memory store behind the same interface.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

var _ Store = (*SQLiteStore)(nil)

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			mode TEXT NOT NULL,
			time_frame TEXT NOT NULL,
			context TEXT NOT NULL,
			current_situation TEXT NOT NULL,
			messages TEXT NOT NULL,
			insights TEXT,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateConversation inserts a conversation and returns the stored record.
func (s *SQLiteStore) CreateConversation(ctx context.Context, draft *domain.ConversationDraft) (*domain.Conversation, error) {
	messages, err := json.Marshal(domain.CloneMessages(draft.Messages))
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}
	insights, err := encodeInsights(draft.Insights)
	if err != nil {
		return nil, err
	}

	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (user_id, mode, time_frame, context, current_situation, messages, insights, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableInt(draft.UserID), string(draft.Mode), string(draft.TimeFrame), string(draft.Context),
		draft.CurrentSituation, string(messages), insights, createdAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	conv := &domain.Conversation{
		ID:               int(id),
		Mode:             draft.Mode,
		TimeFrame:        draft.TimeFrame,
		Context:          draft.Context,
		CurrentSituation: draft.CurrentSituation,
		Messages:         domain.CloneMessages(draft.Messages),
		Insights:         draft.Insights.Clone(),
		CreatedAt:        createdAt,
	}
	if draft.UserID != nil {
		uid := *draft.UserID
		conv.UserID = &uid
	}
	return conv, nil
}

// GetConversation retrieves a conversation by id.
func (s *SQLiteStore) GetConversation(ctx context.Context, id int) (*domain.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, mode, time_frame, context, current_situation, messages, insights, created_at
		 FROM conversations WHERE id = ?`, id)
	conv, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return conv, err
}

// GetConversationsByUser returns conversations matching the given userId.
func (s *SQLiteStore) GetConversationsByUser(ctx context.Context, userID *int) ([]domain.Conversation, error) {
	query := `SELECT id, user_id, mode, time_frame, context, current_situation, messages, insights, created_at
	          FROM conversations WHERE user_id IS NULL`
	var args []interface{}
	if userID != nil {
		query = `SELECT id, user_id, mode, time_frame, context, current_situation, messages, insights, created_at
		         FROM conversations WHERE user_id = ?`
		args = append(args, *userID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Conversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *conv)
	}
	return out, rows.Err()
}

// UpdateConversation shallow-merges the provided fields onto the existing
// record inside a transaction.
func (s *SQLiteStore) UpdateConversation(ctx context.Context, id int, update *domain.ConversationUpdate) (*domain.Conversation, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, user_id, mode, time_frame, context, current_situation, messages, insights, created_at
		 FROM conversations WHERE id = ?`, id)
	conv, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	update.Apply(conv)

	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}
	insights, err := encodeInsights(conv.Insights)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET user_id = ?, mode = ?, time_frame = ?, context = ?, current_situation = ?, messages = ?, insights = ?
		 WHERE id = ?`,
		nullableInt(conv.UserID), string(conv.Mode), string(conv.TimeFrame), string(conv.Context),
		conv.CurrentSituation, string(messages), insights, id); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return conv, nil
}

// DeleteConversation removes a conversation by id.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, id int) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConversation(row rowScanner) (*domain.Conversation, error) {
	var (
		conv      domain.Conversation
		userID    sql.NullInt64
		messages  string
		insights  sql.NullString
		createdAt time.Time
	)
	err := row.Scan(&conv.ID, &userID, &conv.Mode, &conv.TimeFrame, &conv.Context,
		&conv.CurrentSituation, &messages, &insights, &createdAt)
	if err != nil {
		return nil, err
	}

	if userID.Valid {
		uid := int(userID.Int64)
		conv.UserID = &uid
	}
	if err := json.Unmarshal([]byte(messages), &conv.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	if insights.Valid {
		var ins domain.Insights
		if err := json.Unmarshal([]byte(insights.String), &ins); err != nil {
			return nil, fmt.Errorf("failed to decode insights: %w", err)
		}
		conv.Insights = &ins
	}
	conv.CreatedAt = createdAt.UTC()
	return &conv, nil
}

func encodeInsights(ins *domain.Insights) (sql.NullString, error) {
	if ins == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(ins)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode insights: %w", err)
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

func nullableInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}
