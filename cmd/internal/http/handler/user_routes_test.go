package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookshelf/cmd/internal/contract"
	"bookshelf/cmd/internal/domain/entity"
	"bookshelf/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type stubUserService struct {
	registerResp *contract.UserResponse
	registerErr  apierror.ErrorResponse
	confirmErr   apierror.ErrorResponse
	loginResp    *contract.LoginResponse
	loginErr     apierror.ErrorResponse

	confirmedToken string
}

func (s *stubUserService) Register(req *contract.RegisterUserRequest) (*contract.UserResponse, apierror.ErrorResponse) {
	return s.registerResp, s.registerErr
}

func (s *stubUserService) ConfirmEmail(token string) apierror.ErrorResponse {
	s.confirmedToken = token
	return s.confirmErr
}

func (s *stubUserService) Login(req *contract.LoginRequest) (*contract.LoginResponse, apierror.ErrorResponse) {
	return s.loginResp, s.loginErr
}

func (s *stubUserService) Profile(user *entity.User) *contract.UserResponse {
	return &contract.UserResponse{ID: user.ID, Username: user.Username}
}

func request(method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req, httptest.NewRecorder()
}

func TestCreateUserReturns201(t *testing.T) {
	svc := &stubUserService{registerResp: &contract.UserResponse{ID: 42, Username: "someuser"}}
	route := NewUserDefault(svc)

	e := echo.New()
	req, rec := request(http.MethodPost, "/api/users", `{"username":"someuser","email":"a@b.com","password":"password123"}`)
	if err := route.CreateUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"user"`) {
		t.Errorf("expected a user envelope, got %s", rec.Body.String())
	}
}

func TestCreateUserMapsServiceError(t *testing.T) {
	svc := &stubUserService{registerErr: apierror.DuplicateUsernameError}
	route := NewUserDefault(svc)

	e := echo.New()
	req, rec := request(http.MethodPost, "/api/users", `{"username":"someuser","email":"a@b.com","password":"password123"}`)
	if err := route.CreateUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestCreateUserMalformedBody(t *testing.T) {
	route := NewUserDefault(&stubUserService{})

	e := echo.New()
	req, rec := request(http.MethodPost, "/api/users", `{"username":`)
	if err := route.CreateUser(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateUser returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestConfirmEmailPassesToken(t *testing.T) {
	svc := &stubUserService{}
	route := NewUserDefault(svc)

	e := echo.New()
	req, rec := request(http.MethodGet, "/", "")
	c := e.NewContext(req, rec)
	c.SetPath("/api/users/confirm/:token")
	c.SetParamNames("token")
	c.SetParamValues("sometoken")

	if err := route.ConfirmEmail(c); err != nil {
		t.Fatalf("ConfirmEmail returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if svc.confirmedToken != "sometoken" {
		t.Errorf("expected the path token to reach the service, got %q", svc.confirmedToken)
	}
}

func TestConfirmEmailUnknownToken(t *testing.T) {
	svc := &stubUserService{confirmErr: apierror.InvalidVerifyURLError}
	route := NewUserDefault(svc)

	e := echo.New()
	req, rec := request(http.MethodGet, "/", "")
	c := e.NewContext(req, rec)
	c.SetPath("/api/users/confirm/:token")
	c.SetParamNames("token")
	c.SetParamValues("badtoken")

	if err := route.ConfirmEmail(c); err != nil {
		t.Fatalf("ConfirmEmail returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestGetMeRequiresContextUser(t *testing.T) {
	route := NewUserDefault(&stubUserService{})

	e := echo.New()
	req, rec := request(http.MethodGet, "/api/users/me", "")
	if err := route.GetMe(e.NewContext(req, rec)); err != nil {
		t.Fatalf("GetMe returned error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without an authenticated user, got %d", rec.Code)
	}
}

func TestGetMeReturnsProfile(t *testing.T) {
	route := NewUserDefault(&stubUserService{})

	e := echo.New()
	req, rec := request(http.MethodGet, "/api/users/me", "")
	c := e.NewContext(req, rec)
	c.Set("user", &entity.User{ID: 42, Username: "someuser"})

	if err := route.GetMe(c); err != nil {
		t.Fatalf("GetMe returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "someuser") {
		t.Errorf("expected the profile in the body, got %s", rec.Body.String())
	}
}

func TestCreateLoginReturnsToken(t *testing.T) {
	svc := &stubUserService{loginResp: &contract.LoginResponse{AccessToken: "token-value"}}
	route := NewUserDefault(svc)

	e := echo.New()
	req, rec := request(http.MethodPost, "/api/users/login", `{"identifier":"a@b.com","password":"password123"}`)
	if err := route.CreateLogin(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateLogin returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "token-value") {
		t.Errorf("expected the access token in the body, got %s", rec.Body.String())
	}
}

func TestCreateLoginBadCredentials(t *testing.T) {
	svc := &stubUserService{loginErr: apierror.CredentialsError}
	route := NewUserDefault(svc)

	e := echo.New()
	req, rec := request(http.MethodPost, "/api/users/login", `{"identifier":"a@b.com","password":"wrongpassword"}`)
	if err := route.CreateLogin(e.NewContext(req, rec)); err != nil {
		t.Fatalf("CreateLogin returned error: %v", err)
	}

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}
