package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mhrytsenko/contacts-api/internal/dto"
	"github.com/mhrytsenko/contacts-api/internal/service"
)

// ContactHandler handles owner-scoped contact requests
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Create creates a new contact
// @Summary Create contact
// @Tags contacts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateContactRequest true "Contact"
// @Success 201 {object} dto.ContactResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contact)
}

// List returns a filtered page of the caller's contacts
// @Summary List contacts
// @Tags contacts
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Param name query string false "Name substring filter"
// @Param surname query string false "Surname substring filter"
// @Param email query string false "Email substring filter"
// @Success 200 {object} dto.ContactListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	var query dto.ListContactsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err)
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), c.GetString("user_id"), &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ContactListResponse{
		Contacts: contacts,
		Limit:    query.Limit,
		Offset:   query.Offset,
	})
}

// Birthdays returns contacts with birthdays in the upcoming window
// @Summary Upcoming birthdays
// @Tags contacts
// @Security BearerAuth
// @Produce json
// @Param days query int false "Window in days" default(7)
// @Success 200 {array} dto.ContactBirthdayResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /contacts/birthdays [get]
func (h *ContactHandler) Birthdays(c *gin.Context) {
	var query dto.BirthdaysQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondValidationError(c, err)
		return
	}

	contacts, err := h.contactService.UpcomingBirthdays(c.Request.Context(), c.GetString("user_id"), query.Days)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contacts)
}

// Get returns a single contact by id
// @Summary Get contact
// @Tags contacts
// @Security BearerAuth
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} dto.ContactResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	contact, err := h.contactService.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Update replaces all fields of a contact
// @Summary Update contact
// @Tags contacts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.UpdateContactRequest true "Contact"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Patch updates a subset of the fields of a contact
// @Summary Patch contact
// @Tags contacts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Contact ID"
// @Param request body dto.PatchContactRequest true "Fields to update"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /contacts/{id} [patch]
func (h *ContactHandler) Patch(c *gin.Context) {
	var req dto.PatchContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	contact, err := h.contactService.Patch(c.Request.Context(), c.GetString("user_id"), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contact)
}

// Delete removes a contact
// @Summary Delete contact
// @Tags contacts
// @Security BearerAuth
// @Param id path string true "Contact ID"
// @Success 204
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	if err := h.contactService.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
