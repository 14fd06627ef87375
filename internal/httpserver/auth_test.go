package httpserver

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecomcart/internal/domain"
	authsvc "ecomcart/internal/service/auth"
	usersvc "ecomcart/internal/service/user"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubAuthSvc struct {
	user        *domain.User
	registerErr error
	loginErr    error
	lookupErr   error
}

func (s *stubAuthSvc) Register(_ context.Context, _, _ string) (*domain.User, error) {
	return s.user, s.registerErr
}

func (s *stubAuthSvc) Login(_ context.Context, _, _ string) (*domain.User, string, error) {
	if s.loginErr != nil {
		return nil, "", s.loginErr
	}
	return s.user, "access-token", nil
}

func (s *stubAuthSvc) LookupByToken(_ context.Context, _ string) (*domain.User, error) {
	return s.user, s.lookupErr
}

type stubProductSvc struct {
	products []domain.Product
	product  *domain.Product
	err      error
}

func (s *stubProductSvc) List(_ context.Context) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductSvc) Search(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, s.err
}

func (s *stubProductSvc) Get(_ context.Context, _ string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.product, nil
}

type stubCartSvc struct {
	cart        []domain.CartItem
	upsertErr   error
	removeErr   error
	order       *domain.Order
	checkoutErr error
}

func (s *stubCartSvc) Get(_ *domain.User) []domain.CartItem {
	if s.cart == nil {
		return []domain.CartItem{}
	}
	return s.cart
}

func (s *stubCartSvc) Upsert(_ context.Context, _ *domain.User, _ string, _ int) ([]domain.CartItem, error) {
	return s.cart, s.upsertErr
}

func (s *stubCartSvc) Remove(_ context.Context, _ *domain.User, _ string) ([]domain.CartItem, error) {
	return s.cart, s.removeErr
}

func (s *stubCartSvc) Checkout(_ context.Context, _ *domain.User, _ string) (*domain.Order, error) {
	return s.order, s.checkoutErr
}

type stubUserSvc struct {
	addresses  []domain.Address
	addErr     error
	removeErr  error
	profile    usersvc.Profile
	updateErr  error
	lastName   *string
	lastMobile *string
}

func (s *stubUserSvc) Addresses(_ *domain.User) []domain.Address {
	if s.addresses == nil {
		return []domain.Address{}
	}
	return s.addresses
}

func (s *stubUserSvc) AddAddress(_ context.Context, _ *domain.User, _ string) ([]domain.Address, error) {
	return s.addresses, s.addErr
}

func (s *stubUserSvc) RemoveAddress(_ context.Context, _ *domain.User, _ string) ([]domain.Address, error) {
	return s.addresses, s.removeErr
}

func (s *stubUserSvc) GetProfile(_ *domain.User) usersvc.Profile {
	return s.profile
}

func (s *stubUserSvc) UpdateProfile(_ context.Context, _ *domain.User, name, mobile *string) (*usersvc.Profile, error) {
	s.lastName = name
	s.lastMobile = mobile
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &s.profile, nil
}

func testRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if deps.AuthSvc == nil {
		deps.AuthSvc = &stubAuthSvc{}
	}
	if deps.ProductSvc == nil {
		deps.ProductSvc = &stubProductSvc{}
	}
	if deps.CartSvc == nil {
		deps.CartSvc = &stubCartSvc{}
	}
	if deps.UserSvc == nil {
		deps.UserSvc = &stubUserSvc{}
	}
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestRegisterHandler_Created(t *testing.T) {
	router := testRouter(t, Deps{
		AuthSvc: &stubAuthSvc{user: &domain.User{ID: "u1", Username: "crio-user"}},
	})

	body := `{"username":"crio-user","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegisterHandler_ShortPassword(t *testing.T) {
	router := testRouter(t, Deps{
		AuthSvc: &stubAuthSvc{registerErr: authsvc.ErrPasswordTooShort},
	})

	body := `{"username":"crio-user","password":"short"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRegisterHandler_DuplicateUsername(t *testing.T) {
	router := testRouter(t, Deps{
		AuthSvc: &stubAuthSvc{registerErr: authsvc.ErrUsernameTaken},
	})

	body := `{"username":"crio-user","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler_InvalidCredentials(t *testing.T) {
	router := testRouter(t, Deps{
		AuthSvc: &stubAuthSvc{loginErr: authsvc.ErrInvalidCredentials},
	})

	body := `{"username":"crio-user","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestLoginHandler_Success(t *testing.T) {
	router := testRouter(t, Deps{
		AuthSvc: &stubAuthSvc{user: &domain.User{ID: "u1", Username: "crio-user", Balance: 5000}},
	})

	body := `{"username":"crio-user","password":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	got := rec.Body.String()
	if !strings.Contains(got, `"token":"access-token"`) || !strings.Contains(got, `"balance":5000`) {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	router := testRouter(t, Deps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router := testRouter(t, Deps{
		AuthSvc: &stubAuthSvc{lookupErr: authsvc.ErrInvalidToken},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", rec.Code, rec.Body.String())
	}
}
