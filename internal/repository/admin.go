package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsdesk/agentdesk/internal/domain"
)

var adminColumns = []string{"id", "email", "password_hash", "created_at"}

// AdminRepository handles database operations for admin accounts.
type AdminRepository struct {
	pool *pgxpool.Pool
}

// NewAdminRepository creates a new AdminRepository.
func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{pool: pool}
}

func scanAdmin(row pgx.Row) (*domain.Admin, error) {
	var admin domain.Admin
	err := row.Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	return &admin, nil
}

// Create inserts a new admin account and returns it with generated fields.
func (r *AdminRepository) Create(ctx context.Context, email, passwordHash string) (*domain.Admin, error) {
	query, args, err := psql.
		Insert("admins").
		Columns("email", "password_hash").
		Values(email, passwordHash).
		Suffix("RETURNING " + joinColumns(adminColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert admin query: %w", err)
	}

	admin, err := scanAdmin(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return admin, nil
}

// GetByEmail retrieves an admin by email address.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	query, args, err := psql.
		Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return scanAdmin(r.pool.QueryRow(ctx, query, args...))
}

// GetByID retrieves an admin by ID.
func (r *AdminRepository) GetByID(ctx context.Context, adminID string) (*domain.Admin, error) {
	query, args, err := psql.
		Select(adminColumns...).
		From("admins").
		Where(sq.Eq{"id": adminID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return scanAdmin(r.pool.QueryRow(ctx, query, args...))
}
