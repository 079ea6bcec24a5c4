package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/chocobean/storefront/internal/dal/postgres"
	"github.com/chocobean/storefront/internal/service/models/user"
	"github.com/jackc/pgx/v5"
)

// UserDal represents user data access layer model
type UserDal struct {
	Id           int64     `db:"id"`
	UserName     string    `db:"user_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsAdmin      bool      `db:"is_admin"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
}

// ToModel converts UserDal to service layer User model
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:           u.Id,
		UserName:     u.UserName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		Status:       u.Status,
		CreatedAt:    u.CreatedAt,
	}
}

type PostgresUserRepository struct {
	conn postgres.Querier
}

func NewPostgresUserRepository(conn postgres.Querier) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
	}
}

var userColumns = []string{
	"id",
	"user_name",
	"email",
	"password_hash",
	"is_admin",
	"status",
	"created_at",
}

// Insert persists a new user and returns it with the generated id.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (user.User, error) {
	query, args, err := sq.Insert("users").
		Columns("user_name", "email", "password_hash", "is_admin", "status", "created_at").
		Values(u.UserName, u.Email, u.PasswordHash, u.IsAdmin, u.Status, u.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&u.ID); err != nil {
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

func (r *PostgresUserRepository) getBy(ctx context.Context, pred sq.Eq) (*user.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		Where(pred).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal UserDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.UserName,
		&dal.Email,
		&dal.PasswordHash,
		&dal.IsAdmin,
		&dal.Status,
		&dal.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return dal.ToModel(), nil
}

// GetById retrieves a single user. Returns user.ErrUserNotFound when absent.
func (r *PostgresUserRepository) GetById(ctx context.Context, id int64) (*user.User, error) {
	return r.getBy(ctx, sq.Eq{"id": id})
}

// GetByEmail retrieves a user by its unique email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getBy(ctx, sq.Eq{"email": email})
}

// GetAll retrieves every user.
func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]user.User, error) {
	query, args, err := sq.Select(userColumns...).
		From("users").
		OrderBy("id ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var result []user.User
	for rows.Next() {
		var dal UserDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserName,
			&dal.Email,
			&dal.PasswordHash,
			&dal.IsAdmin,
			&dal.Status,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// UpdateStatus overwrites the free-text status of a user.
func (r *PostgresUserRepository) UpdateStatus(ctx context.Context, id int64, status string) (bool, error) {
	query, args, err := sq.Update("users").
		Set("status", status).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to update user status: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Delete removes a user. Profile, orders and sent messages follow via FK
// cascade; messages still addressed to the user block the delete.
func (r *PostgresUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := sq.Delete("users").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetProfile retrieves the profile of a user, nil when none was saved yet.
func (r *PostgresUserRepository) GetProfile(ctx context.Context, userId int64) (*user.Profile, error) {
	query, args, err := sq.Select(
		"id",
		"user_id",
		"COALESCE(first_name, '')",
		"COALESCE(last_name, '')",
		"COALESCE(phone, '')",
		"COALESCE(address, '')",
		"COALESCE(city, '')",
		"COALESCE(postal_code, '')",
	).
		From("user_profiles").
		Where(sq.Eq{"user_id": userId}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var p user.Profile
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.PostalCode,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}

	return &p, nil
}

// UpsertProfile inserts or replaces the profile of a user.
func (r *PostgresUserRepository) UpsertProfile(ctx context.Context, p user.Profile) (user.Profile, error) {
	query, args, err := sq.Insert("user_profiles").
		Columns("user_id", "first_name", "last_name", "phone", "address", "city", "postal_code").
		Values(p.UserID, p.FirstName, p.LastName, p.Phone, p.Address, p.City, p.PostalCode).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			city = EXCLUDED.city,
			postal_code = EXCLUDED.postal_code
			RETURNING id`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return user.Profile{}, fmt.Errorf("failed to build upsert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		return user.Profile{}, fmt.Errorf("failed to upsert user profile: %w", err)
	}

	return p, nil
}
