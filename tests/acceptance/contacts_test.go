package acceptance

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mhrytsenko/contacts-api/internal/dto"
)

func (s *Suite) createContact(token string, req dto.CreateContactRequest) dto.ContactResponse {
	resp := s.postJSON("/api/v1/contacts", req, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	var contact dto.ContactResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&contact))
	return contact
}

func sampleContact(name, surname, email string) dto.CreateContactRequest {
	return dto.CreateContactRequest{
		Name:      name,
		Surname:   surname,
		Email:     email,
		Phone:     "+380501234567",
		BirthDate: dto.NewDate(time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)),
	}
}

func (s *Suite) TestCreateContact_RoundTrip() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	extra := "met at a conference"
	req := sampleContact("John", "Doe", "john.doe@example.com")
	req.ExtraInfo = &extra

	created := s.createContact(token, req)
	s.NotEmpty(created.ID)
	s.Equal("John", created.Name)
	s.Equal("Doe", created.Surname)
	s.Equal("john.doe@example.com", created.Email)
	s.Require().NotNil(created.ExtraInfo)
	s.Equal(extra, *created.ExtraInfo)

	resp := s.doJSON(http.MethodGet, "/api/v1/contacts/"+created.ID, nil, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var fetched dto.ContactResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&fetched))
	s.Equal(created.ID, fetched.ID)
	s.Equal("1990-05-15", fetched.BirthDate.Time.Format("2006-01-02"))
}

func (s *Suite) TestCreateContact_Validation() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	req := sampleContact("John", "Doe", "not-an-email")
	resp := s.postJSON("/api/v1/contacts", req, token)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestCreateContact_RequiresAuth() {
	resp := s.postJSON("/api/v1/contacts", sampleContact("John", "Doe", "john@example.com"), "")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetContact_NotFound() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	resp := s.doJSON(http.MethodGet, "/api/v1/contacts/7f8b38ab-1111-4f61-9c6c-000000000000", nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestGetContact_OwnerIsolation() {
	aliceToken := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")
	bobToken := s.registerAndLogin("Bob", "bob@example.com", "Str0ngPass!")

	contact := s.createContact(aliceToken, sampleContact("John", "Doe", "john@example.com"))

	resp := s.doJSON(http.MethodGet, "/api/v1/contacts/"+contact.ID, nil, bobToken)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode, "Foreign contact should look nonexistent")
}

func (s *Suite) TestListContacts_PaginationAndFilter() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	for i := 0; i < 5; i++ {
		s.createContact(token, sampleContact(
			fmt.Sprintf("Name%d", i),
			"Smith",
			fmt.Sprintf("smith%d@example.com", i),
		))
	}
	s.createContact(token, sampleContact("Jane", "Jones", "jane@example.com"))

	resp := s.doJSON(http.MethodGet, "/api/v1/contacts?limit=3&offset=0", nil, token)
	var page dto.ContactListResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	s.Len(page.Contacts, 3)
	s.Equal(3, page.Limit)

	resp = s.doJSON(http.MethodGet, "/api/v1/contacts?surname=smith", nil, token)
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	s.Len(page.Contacts, 5, "Surname filter should be case-insensitive")

	resp = s.doJSON(http.MethodGet, "/api/v1/contacts?name=Jane", nil, token)
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	resp.Body.Close()
	s.Require().Len(page.Contacts, 1)
	s.Equal("Jane", page.Contacts[0].Name)
}

func (s *Suite) TestListContacts_ScopedToOwner() {
	aliceToken := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")
	bobToken := s.registerAndLogin("Bob", "bob@example.com", "Str0ngPass!")

	s.createContact(aliceToken, sampleContact("John", "Doe", "john@example.com"))

	resp := s.doJSON(http.MethodGet, "/api/v1/contacts", nil, bobToken)
	defer resp.Body.Close()

	var page dto.ContactListResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&page))
	s.Empty(page.Contacts)
}

func (s *Suite) TestUpdateContact_Put() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")
	contact := s.createContact(token, sampleContact("John", "Doe", "john@example.com"))

	update := dto.UpdateContactRequest{
		Name:      "Johnny",
		Surname:   "Doe",
		Email:     "johnny@example.com",
		Phone:     "+380671112233",
		BirthDate: dto.NewDate(time.Date(1991, 6, 16, 0, 0, 0, 0, time.UTC)),
	}

	resp := s.doJSON(http.MethodPut, "/api/v1/contacts/"+contact.ID, update, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var updated dto.ContactResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&updated))
	s.Equal("Johnny", updated.Name)
	s.Equal("johnny@example.com", updated.Email)
	s.Equal("1991-06-16", updated.BirthDate.Time.Format("2006-01-02"))
	s.Nil(updated.ExtraInfo, "Omitted extra_info should be cleared by PUT")
}

func (s *Suite) TestPatchContact_PartialUpdate() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	extra := "old note"
	req := sampleContact("John", "Doe", "john@example.com")
	req.ExtraInfo = &extra
	contact := s.createContact(token, req)

	newPhone := "+380991234567"
	resp := s.doJSON(http.MethodPatch, "/api/v1/contacts/"+contact.ID, dto.PatchContactRequest{Phone: &newPhone}, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var patched dto.ContactResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&patched))
	s.Equal(newPhone, patched.Phone)
	s.Equal("John", patched.Name, "Untouched fields should survive the patch")
	s.Require().NotNil(patched.ExtraInfo)
	s.Equal(extra, *patched.ExtraInfo)
}

func (s *Suite) TestPatchContact_ForeignContact() {
	aliceToken := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")
	bobToken := s.registerAndLogin("Bob", "bob@example.com", "Str0ngPass!")

	contact := s.createContact(aliceToken, sampleContact("John", "Doe", "john@example.com"))

	newName := "Hijacked"
	resp := s.doJSON(http.MethodPatch, "/api/v1/contacts/"+contact.ID, dto.PatchContactRequest{Name: &newName}, bobToken)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)
}

func (s *Suite) TestDeleteContact() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")
	contact := s.createContact(token, sampleContact("John", "Doe", "john@example.com"))

	resp := s.doJSON(http.MethodDelete, "/api/v1/contacts/"+contact.ID, nil, token)
	resp.Body.Close()
	s.Require().Equal(http.StatusNoContent, resp.StatusCode)

	resp = s.doJSON(http.MethodGet, "/api/v1/contacts/"+contact.ID, nil, token)
	resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode)

	resp = s.doJSON(http.MethodDelete, "/api/v1/contacts/"+contact.ID, nil, token)
	defer resp.Body.Close()
	s.Equal(http.StatusNotFound, resp.StatusCode, "Second delete should report not found")
}

func (s *Suite) TestBirthdays_UpcomingWindow() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	now := time.Now().UTC()
	soon := now.AddDate(0, 0, 3)
	far := now.AddDate(0, 0, 60)

	inWindow := sampleContact("Soon", "Birthday", "soon@example.com")
	inWindow.BirthDate = dto.NewDate(time.Date(1985, soon.Month(), soon.Day(), 0, 0, 0, 0, time.UTC))
	s.createContact(token, inWindow)

	outOfWindow := sampleContact("Far", "Birthday", "far@example.com")
	outOfWindow.BirthDate = dto.NewDate(time.Date(1985, far.Month(), far.Day(), 0, 0, 0, 0, time.UTC))
	s.createContact(token, outOfWindow)

	resp := s.doJSON(http.MethodGet, "/api/v1/contacts/birthdays?days=7", nil, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var birthdays []dto.ContactBirthdayResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&birthdays))
	s.Require().Len(birthdays, 1)
	s.Equal("Soon", birthdays[0].Name)
}

func (s *Suite) TestBirthdays_WindowSpanningMonths() {
	token := s.registerAndLogin("Alice", "alice@example.com", "Str0ngPass!")

	now := time.Now().UTC()
	mid := now.AddDate(0, 0, 45)
	far := now.AddDate(0, 0, 100)

	inWindow := sampleContact("Mid", "Window", "mid@example.com")
	inWindow.BirthDate = dto.NewDate(time.Date(1985, mid.Month(), mid.Day(), 0, 0, 0, 0, time.UTC))
	s.createContact(token, inWindow)

	outOfWindow := sampleContact("Far", "Window", "far@example.com")
	outOfWindow.BirthDate = dto.NewDate(time.Date(1985, far.Month(), far.Day(), 0, 0, 0, 0, time.UTC))
	s.createContact(token, outOfWindow)

	resp := s.doJSON(http.MethodGet, "/api/v1/contacts/birthdays?days=60", nil, token)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var birthdays []dto.ContactBirthdayResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&birthdays))
	s.Require().Len(birthdays, 1, "Birthday two months out must not be dropped")
	s.Equal("Mid", birthdays[0].Name)
}
