package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mhrytsenko/contacts-api/internal/domain"
	"github.com/mhrytsenko/contacts-api/internal/dto"
	"github.com/mhrytsenko/contacts-api/internal/repository"
)

// contactService implements ContactService interface
type contactService struct {
	contactRepo repository.ContactRepository
}

// NewContactService creates a new contact service
func NewContactService(contactRepo repository.ContactRepository) ContactService {
	return &contactService{contactRepo: contactRepo}
}

// Create creates a contact owned by the caller
func (s *contactService) Create(ctx context.Context, userID string, req *dto.CreateContactRequest) (*dto.ContactResponse, error) {
	contact := &domain.Contact{
		UserID:    userID,
		Name:      req.Name,
		Surname:   req.Surname,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate.Time,
		ExtraInfo: req.ExtraInfo,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contactToResponse(contact), nil
}

// Get returns one of the caller's contacts by id
func (s *contactService) Get(ctx context.Context, userID, contactID string) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	return contactToResponse(contact), nil
}

// List returns a filtered page of the caller's contacts
func (s *contactService) List(ctx context.Context, userID string, query *dto.ListContactsQuery) ([]dto.ContactResponse, error) {
	contacts, err := s.contactRepo.List(ctx, userID, repository.ContactFilter{
		Limit:   query.Limit,
		Offset:  query.Offset,
		Name:    query.Name,
		Surname: query.Surname,
		Email:   query.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	responses := make([]dto.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, *contactToResponse(contact))
	}

	return responses, nil
}

// UpcomingBirthdays returns the caller's contacts with birthdays inside the window
func (s *contactService) UpcomingBirthdays(ctx context.Context, userID string, days int) ([]dto.ContactBirthdayResponse, error) {
	contacts, err := s.contactRepo.ListUpcomingBirthdays(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming birthdays: %w", err)
	}

	responses := make([]dto.ContactBirthdayResponse, 0, len(contacts))
	for _, contact := range contacts {
		responses = append(responses, dto.ContactBirthdayResponse{
			ID:        contact.ID,
			Name:      contact.Name,
			Surname:   contact.Surname,
			BirthDate: dto.NewDate(contact.BirthDate),
		})
	}

	return responses, nil
}

// Update fully replaces the mutable fields of one of the caller's contacts
func (s *contactService) Update(ctx context.Context, userID, contactID string, req *dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	contact := &domain.Contact{
		ID:        contactID,
		UserID:    userID,
		Name:      req.Name,
		Surname:   req.Surname,
		Email:     req.Email,
		Phone:     req.Phone,
		BirthDate: req.BirthDate.Time,
		ExtraInfo: req.ExtraInfo,
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return s.Get(ctx, userID, contactID)
}

// Patch updates only the provided fields, leaving the rest unchanged
func (s *contactService) Patch(ctx context.Context, userID, contactID string, req *dto.PatchContactRequest) (*dto.ContactResponse, error) {
	contact, err := s.contactRepo.GetByID(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Surname != nil {
		contact.Surname = *req.Surname
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.BirthDate != nil {
		contact.BirthDate = req.BirthDate.Time
	}
	if req.ExtraInfo != nil {
		contact.ExtraInfo = req.ExtraInfo
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		return nil, err
	}

	return contactToResponse(contact), nil
}

// Delete removes one of the caller's contacts
func (s *contactService) Delete(ctx context.Context, userID, contactID string) error {
	return s.contactRepo.Delete(ctx, userID, contactID)
}

func contactToResponse(contact *domain.Contact) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:        contact.ID,
		Name:      contact.Name,
		Surname:   contact.Surname,
		Email:     contact.Email,
		Phone:     contact.Phone,
		BirthDate: dto.NewDate(contact.BirthDate),
		ExtraInfo: contact.ExtraInfo,
		CreatedAt: contact.CreatedAt.Format(time.RFC3339),
		UpdatedAt: contact.UpdatedAt.Format(time.RFC3339),
	}
}
