package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mhrytsenko/contacts-api/internal/domain"
	"github.com/mhrytsenko/contacts-api/pkg/database"
)

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, password_hash, avatar_url, is_email_verified, refresh_token_hash, created_at, updated_at`

// Create creates a new user in the database
func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, is_email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.IsEmailVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		// Check for unique constraint violation (duplicate email)
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" { // unique_violation
				return fmt.Errorf("user with email %s already exists: %w", user.Email, ErrDuplicateEmail)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with email %s not found: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by ID
func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := r.scanUser(r.db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

// UpdateName updates the display name of a user
func (r *userRepository) UpdateName(ctx context.Context, userID, name string) error {
	query := `UPDATE users SET name = $2, updated_at = $3 WHERE id = $1`

	return r.execExpectingRow(ctx, query, "user", userID, name, time.Now())
}

// UpdateAvatar stores the avatar URL returned by the file storage
func (r *userRepository) UpdateAvatar(ctx context.Context, userID, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = $3 WHERE id = $1`

	return r.execExpectingRow(ctx, query, "user", userID, avatarURL, time.Now())
}

// ConfirmEmail flips the email verification flag. Confirming an already
// confirmed account is a no-op, not an error.
func (r *userRepository) ConfirmEmail(ctx context.Context, email string) error {
	query := `UPDATE users SET is_email_verified = TRUE, updated_at = $2 WHERE email = $1`

	return r.execExpectingRow(ctx, query, "user", email, time.Now())
}

// SetRefreshFingerprint unconditionally stores a fingerprint for the user.
// Passing nil revokes the current session.
func (r *userRepository) SetRefreshFingerprint(ctx context.Context, userID string, fingerprint *string) error {
	query := `UPDATE users SET refresh_token_hash = $2, updated_at = $3 WHERE id = $1`

	return r.execExpectingRow(ctx, query, "user", userID, fingerprint, time.Now())
}

// SwapRefreshFingerprint replaces the stored fingerprint only if it still
// equals oldFingerprint. The WHERE clause makes the rotation a database-level
// compare-and-set: of two concurrent refreshes presenting the same old token
// exactly one update matches a row, the other gets ErrFingerprintMismatch.
func (r *userRepository) SwapRefreshFingerprint(ctx context.Context, userID, oldFingerprint, newFingerprint string) error {
	query := `
		UPDATE users
		SET refresh_token_hash = $3, updated_at = $4
		WHERE id = $1 AND refresh_token_hash = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, userID, oldFingerprint, newFingerprint, time.Now())
	if err != nil {
		return fmt.Errorf("failed to swap refresh fingerprint: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrFingerprintMismatch
	}

	return nil
}

func (r *userRepository) execExpectingRow(ctx context.Context, query, entity string, args ...interface{}) error {
	result, err := r.db.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", entity, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s not found: %w", entity, ErrNotFound)
	}

	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	user := &domain.User{}
	var avatarURL, refreshTokenHash sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&avatarURL,
		&user.IsEmailVerified,
		&refreshTokenHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}
	if refreshTokenHash.Valid {
		user.RefreshTokenHash = &refreshTokenHash.String
	}

	return user, nil
}
