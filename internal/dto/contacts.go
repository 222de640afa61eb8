package dto

// CreateContactRequest represents a contact creation request
type CreateContactRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=50"`
	Surname   string  `json:"surname" binding:"required,min=1,max=50"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required,min=7,max=50"`
	BirthDate Date    `json:"birth_date" binding:"required"`
	ExtraInfo *string `json:"extra_info" binding:"omitempty,max=255"`
}

// UpdateContactRequest represents a full contact update (PUT)
type UpdateContactRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=50"`
	Surname   string  `json:"surname" binding:"required,min=1,max=50"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     string  `json:"phone" binding:"required,min=7,max=50"`
	BirthDate Date    `json:"birth_date" binding:"required"`
	ExtraInfo *string `json:"extra_info" binding:"omitempty,max=255"`
}

// PatchContactRequest represents a partial contact update, all fields optional
type PatchContactRequest struct {
	Name      *string `json:"name" binding:"omitempty,min=1,max=50"`
	Surname   *string `json:"surname" binding:"omitempty,min=1,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,min=7,max=50"`
	BirthDate *Date   `json:"birth_date"`
	ExtraInfo *string `json:"extra_info" binding:"omitempty,max=255"`
}

// ListContactsQuery represents pagination and filter query parameters
type ListContactsQuery struct {
	Limit   int    `form:"limit,default=20" binding:"min=1,max=100"`
	Offset  int    `form:"offset,default=0" binding:"min=0"`
	Name    string `form:"name"`
	Surname string `form:"surname"`
	Email   string `form:"email"`
}

// BirthdaysQuery represents the upcoming-birthdays window query
type BirthdaysQuery struct {
	Days int `form:"days,default=7" binding:"min=1,max=366"`
}

// ContactResponse represents a contact in responses
type ContactResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	BirthDate Date    `json:"birth_date"`
	ExtraInfo *string `json:"extra_info"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ContactBirthdayResponse represents a contact in the birthdays listing
type ContactBirthdayResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	BirthDate Date   `json:"birth_date"`
}

// ContactListResponse wraps a page of contacts
type ContactListResponse struct {
	Contacts []ContactResponse `json:"contacts"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
