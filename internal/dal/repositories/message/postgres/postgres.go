package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/service/models/message"
)

// MessageDal represents message data access layer model
type MessageDal struct {
	Id           int64     `db:"id"`
	FromUserId   int64     `db:"from_user_id"`
	FromUserName string    `db:"from_user_name"`
	ToUserId     *int64    `db:"to_user_id"`
	ToUserName   *string   `db:"to_user_name"`
	Subject      string    `db:"subject"`
	Content      string    `db:"content"`
	IsRead       bool      `db:"is_read"`
	CreatedAt    time.Time `db:"created_at"`
}

// ToModel converts MessageDal to service layer Message model
func (m *MessageDal) ToModel() *message.Message {
	model := &message.Message{
		ID:           m.Id,
		FromUserID:   m.FromUserId,
		FromUserName: m.FromUserName,
		ToUserID:     m.ToUserId,
		Subject:      m.Subject,
		Content:      m.Content,
		IsRead:       m.IsRead,
		CreatedAt:    m.CreatedAt,
	}
	if m.ToUserName != nil {
		model.ToUserName = *m.ToUserName
	}

	return model
}

type PostgresMessageRepository struct {
	conn postgres.Querier
}

func NewPostgresMessageRepository(conn postgres.Querier) *PostgresMessageRepository {
	return &PostgresMessageRepository{
		conn: conn,
	}
}

// Insert persists a new message and returns it with the generated id.
func (r *PostgresMessageRepository) Insert(ctx context.Context, m message.Message) (message.Message, error) {
	query, args, err := sq.Insert("messages").
		Columns("from_user_id", "to_user_id", "subject", "content", "is_read", "created_at").
		Values(m.FromUserID, m.ToUserID, m.Subject, m.Content, m.IsRead, m.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return message.Message{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&m.ID); err != nil {
		return message.Message{}, fmt.Errorf("failed to insert message: %w", err)
	}

	return m, nil
}

func (r *PostgresMessageRepository) query(ctx context.Context, where any) ([]message.Message, error) {
	query, args, err := sq.Select(
		"m.id",
		"m.from_user_id",
		"fu.user_name",
		"m.to_user_id",
		"tu.user_name",
		"m.subject",
		"m.content",
		"m.is_read",
		"m.created_at",
	).
		From("messages m").
		Join("users fu ON fu.id = m.from_user_id").
		LeftJoin("users tu ON tu.id = m.to_user_id").
		Where(where).
		OrderBy("m.created_at DESC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var result []message.Message
	for rows.Next() {
		var dal MessageDal
		err := rows.Scan(
			&dal.Id,
			&dal.FromUserId,
			&dal.FromUserName,
			&dal.ToUserId,
			&dal.ToUserName,
			&dal.Subject,
			&dal.Content,
			&dal.IsRead,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// QueryByUser retrieves messages a user has sent or received, newest first.
func (r *PostgresMessageRepository) QueryByUser(ctx context.Context, userId int64) ([]message.Message, error) {
	return r.query(ctx, sq.Or{
		sq.Eq{"m.from_user_id": userId},
		sq.Eq{"m.to_user_id": userId},
	})
}

// QueryAdmin retrieves the administrators' shared inbox: messages without an
// explicit recipient.
func (r *PostgresMessageRepository) QueryAdmin(ctx context.Context) ([]message.Message, error) {
	return r.query(ctx, sq.Eq{"m.to_user_id": nil})
}

// MarkRead flags a message as read. Returns false when the message does not
// exist.
func (r *PostgresMessageRepository) MarkRead(ctx context.Context, id int64) (bool, error) {
	query, args, err := sq.Update("messages").
		Set("is_read", true).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to mark message read: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
