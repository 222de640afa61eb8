package acceptance

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/mhrytsenko/contacts-api/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	resp := s.register("Alice", "alice@example.com", "Str0ngPass!")
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var user dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&user))
	s.Equal("Alice", user.Name)
	s.Equal("alice@example.com", user.Email)
	s.NotEmpty(user.ID)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	resp := s.register("Alice", "alice@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.register("Other Alice", "alice@example.com", "An0therPass!")
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestRegister_DuplicateEmailCaseInsensitive() {
	resp := s.register("Alice", "alice@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.register("Alice", "ALICE@Example.COM", "Str0ngPass!")
	defer resp.Body.Close()
	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestRegister_WeakPassword() {
	resp := s.register("Alice", "alice@example.com", "short")
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRegister_InvalidEmail() {
	resp := s.register("Alice", "not-an-email", "Str0ngPass!")
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestLogin_UnconfirmedEmail() {
	resp := s.register("Bob", "bob@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	resp = s.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "Str0ngPass!",
	}, "")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogin_AfterConfirm() {
	resp := s.register("Bob", "bob@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	s.confirmEmail("bob@example.com")

	authResp, refreshCookie := s.login("bob@example.com", "Str0ngPass!")
	s.NotEmpty(authResp.AccessToken)
	s.Equal("Bearer", authResp.TokenType)
	s.Positive(authResp.ExpiresIn)
	s.NotEmpty(refreshCookie.Value)
	s.True(refreshCookie.HttpOnly)
}

func (s *Suite) TestLogin_WrongPassword() {
	s.registerAndLogin("Bob", "bob@example.com", "Str0ngPass!")

	resp := s.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "WrongPass1!",
	}, "")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogin_UnknownEmail() {
	resp := s.postJSON("/api/v1/auth/login", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "Str0ngPass!",
	}, "")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestConfirmEmail_Idempotent() {
	resp := s.register("Carol", "carol@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	token, err := s.JWTManager.GenerateEmailToken("carol@example.com")
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		confirmResp, err := http.Get(s.BaseURL + "/api/v1/auth/confirm/" + token)
		s.Require().NoError(err)
		confirmResp.Body.Close()
		s.Equal(http.StatusOK, confirmResp.StatusCode)
	}
}

func (s *Suite) TestConfirmEmail_InvalidToken() {
	resp, err := http.Get(s.BaseURL + "/api/v1/auth/confirm/garbage-token")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestConfirmEmail_AccessTokenRejected() {
	s.registerAndLogin("Carol", "carol@example.com", "Str0ngPass!")

	accessToken, err := s.JWTManager.GenerateAccessToken("some-id", "carol@example.com")
	s.Require().NoError(err)

	resp, err := http.Get(s.BaseURL + "/api/v1/auth/confirm/" + accessToken)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRequestEmail_AlwaysGeneric() {
	resp := s.register("Dave", "dave@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.Require().Equal(http.StatusCreated, resp.StatusCode)

	for _, email := range []string{"dave@example.com", "nobody@example.com"} {
		resp := s.postJSON("/api/v1/auth/request-email", dto.RequestEmailRequest{Email: email}, "")
		s.Equal(http.StatusOK, resp.StatusCode)

		var body dto.SuccessResponse
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		s.Equal("Check your email for confirmation", body.Message)
	}
}

func (s *Suite) TestRefresh_RotatesToken() {
	resp := s.register("Eve", "eve@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.confirmEmail("eve@example.com")
	_, cookie := s.login("eve@example.com", "Str0ngPass!")

	refreshResp := s.refresh(cookie)
	defer refreshResp.Body.Close()
	s.Equal(http.StatusOK, refreshResp.StatusCode)

	var authResp dto.AuthResponse
	s.Require().NoError(json.NewDecoder(refreshResp.Body).Decode(&authResp))
	s.NotEmpty(authResp.AccessToken)

	var newCookie *http.Cookie
	for _, c := range refreshResp.Cookies() {
		if c.Name == "refresh_token" {
			newCookie = c
		}
	}
	s.Require().NotNil(newCookie)
	s.NotEqual(cookie.Value, newCookie.Value, "Refresh should issue a new token")
}

func (s *Suite) TestRefresh_OldTokenRejectedAfterRotation() {
	resp := s.register("Eve", "eve@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.confirmEmail("eve@example.com")
	_, cookie := s.login("eve@example.com", "Str0ngPass!")

	first := s.refresh(cookie)
	first.Body.Close()
	s.Require().Equal(http.StatusOK, first.StatusCode)

	replay := s.refresh(cookie)
	defer replay.Body.Close()
	s.Equal(http.StatusUnauthorized, replay.StatusCode)
}

func (s *Suite) TestRefresh_ConcurrentSingleWinner() {
	resp := s.register("Frank", "frank@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.confirmEmail("frank@example.com")
	_, cookie := s.login("frank@example.com", "Str0ngPass!")

	const attempts = 4
	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			r := s.refresh(cookie)
			r.Body.Close()
			statuses[i] = r.StatusCode
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, code := range statuses {
		if code == http.StatusOK {
			successes++
		} else {
			s.Equal(http.StatusUnauthorized, code)
		}
	}
	s.Equal(1, successes, "Exactly one concurrent refresh should succeed")
}

func (s *Suite) TestRefresh_MissingCookie() {
	resp, err := http.Post(s.BaseURL+"/api/v1/auth/refresh", "application/json", nil)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout_InvalidatesTokens() {
	resp := s.register("Grace", "grace@example.com", "Str0ngPass!")
	resp.Body.Close()
	s.confirmEmail("grace@example.com")
	authResp, cookie := s.login("grace@example.com", "Str0ngPass!")

	logoutResp := s.postJSON("/api/v1/auth/logout", nil, authResp.AccessToken)
	logoutResp.Body.Close()
	s.Require().Equal(http.StatusOK, logoutResp.StatusCode)

	meResp := s.doJSON(http.MethodGet, "/api/v1/users/me", nil, authResp.AccessToken)
	meResp.Body.Close()
	s.Equal(http.StatusUnauthorized, meResp.StatusCode, "Blacklisted access token should be rejected")

	refreshResp := s.refresh(cookie)
	refreshResp.Body.Close()
	s.Equal(http.StatusUnauthorized, refreshResp.StatusCode, "Refresh token should be revoked")
}

func (s *Suite) TestLogout_RequiresAuth() {
	resp := s.postJSON("/api/v1/auth/logout", nil, "")
	defer resp.Body.Close()
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestRateLimit_LoginBurst() {
	var last int
	for i := 0; i < 25; i++ {
		resp := s.postJSON("/api/v1/auth/login", dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "Str0ngPass!",
		}, "")
		last = resp.StatusCode
		resp.Body.Close()
		if last == http.StatusTooManyRequests {
			break
		}
	}
	s.Equal(http.StatusTooManyRequests, last)
}
