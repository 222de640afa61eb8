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

// contactRepository implements ContactRepository interface
type contactRepository struct {
	db *database.Postgres
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *database.Postgres) ContactRepository {
	return &contactRepository{db: db}
}

const contactColumns = `id, user_id, name, surname, email, phone, birth_date, extra_info, created_at, updated_at`

// Create creates a new contact for its owner
func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	query := `
		INSERT INTO contacts (id, user_id, name, surname, email, phone, birth_date, extra_info, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	now := time.Now()
	if contact.CreatedAt.IsZero() {
		contact.CreatedAt = now
	}
	if contact.UpdatedAt.IsZero() {
		contact.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.Surname,
		contact.Email,
		contact.Phone,
		contact.BirthDate,
		contact.ExtraInfo,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

// GetByID retrieves a contact by id, scoped to its owner. A contact owned by
// another user is indistinguishable from a missing one.
func (r *contactRepository) GetByID(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE id = $1 AND user_id = $2`, contactColumns)

	contact, err := scanContact(r.db.DB.QueryRowContext(ctx, query, contactID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("contact with id %s not found: %w", contactID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact by id: %w", err)
	}

	return contact, nil
}

// List retrieves a page of the owner's contacts with optional substring filters
func (r *contactRepository) List(ctx context.Context, userID string, filter ContactFilter) ([]*domain.Contact, error) {
	query := fmt.Sprintf(`SELECT %s FROM contacts WHERE user_id = $1`, contactColumns)
	args := []interface{}{userID}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if filter.Surname != "" {
		args = append(args, "%"+filter.Surname+"%")
		query += fmt.Sprintf(" AND surname ILIKE $%d", len(args))
	}
	if filter.Email != "" {
		args = append(args, "%"+filter.Email+"%")
		query += fmt.Sprintf(" AND email ILIKE $%d", len(args))
	}

	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	return r.queryContacts(ctx, query, args...)
}

// ListUpcomingBirthdays retrieves the owner's contacts whose birthday
// (month/day) falls within the next `days` days, handling month and year
// boundaries. Results come back in order of upcoming occurrence.
func (r *contactRepository) ListUpcomingBirthdays(ctx context.Context, userID string, days int) ([]*domain.Contact, error) {
	dates := birthdayWindow(time.Now(), days)

	query := fmt.Sprintf(`
		SELECT %s FROM contacts
		WHERE user_id = $1 AND to_char(birth_date, 'MM-DD') = ANY($2::text[])
		ORDER BY array_position($2::text[], to_char(birth_date, 'MM-DD'))
	`, contactColumns)

	return r.queryContacts(ctx, query, userID, pq.Array(dates))
}

// birthdayWindow enumerates the MM-DD calendar dates from start through
// start+days inclusive. Walking real dates keeps leap days correct, and the
// walk stops once a date repeats so a window of a year or more covers the
// whole calendar exactly once.
func birthdayWindow(start time.Time, days int) []string {
	seen := make(map[string]struct{}, days+1)
	dates := make([]string, 0, days+1)

	for i := 0; i <= days; i++ {
		key := start.AddDate(0, 0, i).Format("01-02")
		if _, ok := seen[key]; ok {
			break
		}
		seen[key] = struct{}{}
		dates = append(dates, key)
	}

	return dates
}

// Update rewrites all mutable fields of a contact, scoped to its owner
func (r *contactRepository) Update(ctx context.Context, contact *domain.Contact) error {
	query := `
		UPDATE contacts
		SET name = $3, surname = $4, email = $5, phone = $6, birth_date = $7, extra_info = $8, updated_at = $9
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query,
		contact.ID,
		contact.UserID,
		contact.Name,
		contact.Surname,
		contact.Email,
		contact.Phone,
		contact.BirthDate,
		contact.ExtraInfo,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("contact with id %s not found: %w", contact.ID, ErrNotFound)
	}

	return nil
}

// Delete removes a contact, scoped to its owner
func (r *contactRepository) Delete(ctx context.Context, userID, contactID string) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, contactID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("contact with id %s not found: %w", contactID, ErrNotFound)
	}

	return nil
}

func (r *contactRepository) queryContacts(ctx context.Context, query string, args ...interface{}) ([]*domain.Contact, error) {
	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*domain.Contact
	for rows.Next() {
		contact := &domain.Contact{}
		var extraInfo sql.NullString

		err := rows.Scan(
			&contact.ID,
			&contact.UserID,
			&contact.Name,
			&contact.Surname,
			&contact.Email,
			&contact.Phone,
			&contact.BirthDate,
			&extraInfo,
			&contact.CreatedAt,
			&contact.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}

		if extraInfo.Valid {
			contact.ExtraInfo = &extraInfo.String
		}

		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	return contacts, nil
}

func scanContact(row *sql.Row) (*domain.Contact, error) {
	contact := &domain.Contact{}
	var extraInfo sql.NullString

	err := row.Scan(
		&contact.ID,
		&contact.UserID,
		&contact.Name,
		&contact.Surname,
		&contact.Email,
		&contact.Phone,
		&contact.BirthDate,
		&extraInfo,
		&contact.CreatedAt,
		&contact.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if extraInfo.Valid {
		contact.ExtraInfo = &extraInfo.String
	}

	return contact, nil
}
