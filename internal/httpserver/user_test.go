package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ecomcart/internal/domain"
	usersvc "ecomcart/internal/service/user"
)

func userDeps(users *stubUserSvc) Deps {
	return Deps{
		AuthSvc: &stubAuthSvc{user: &domain.User{ID: "u1", Username: "crio-user", Balance: 5000}},
		UserSvc: users,
	}
}

func TestListAddressesHandler(t *testing.T) {
	router := testRouter(t, userDeps(&stubUserSvc{
		addresses: []domain.Address{{ID: "a1", Address: "221B Baker Street, London, United Kingdom"}},
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/user/addresses", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"_id":"a1"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddAddressHandler_TooShort(t *testing.T) {
	router := testRouter(t, userDeps(&stubUserSvc{addErr: usersvc.ErrAddressTooShort}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/user/addresses", `{"address":"too short"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddAddressHandler_TooLong(t *testing.T) {
	router := testRouter(t, userDeps(&stubUserSvc{addErr: usersvc.ErrAddressTooLong}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/user/addresses", `{"address":"x"}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddAddressHandler_Success(t *testing.T) {
	router := testRouter(t, userDeps(&stubUserSvc{
		addresses: []domain.Address{{ID: "a1", Address: "221B Baker Street, London, United Kingdom"}},
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/v1/user/addresses", `{"address":"221B Baker Street, London, United Kingdom"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRemoveAddressHandler_NotFound(t *testing.T) {
	router := testRouter(t, userDeps(&stubUserSvc{removeErr: usersvc.ErrAddressNotFound}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/v1/user/addresses/a9", ""))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Address to delete was not found") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetProfileHandler(t *testing.T) {
	router := testRouter(t, userDeps(&stubUserSvc{
		profile: usersvc.Profile{
			Username:  "crio-user",
			Balance:   5000,
			Name:      "Crio User",
			Mobile:    "9876543210",
			Addresses: []domain.Address{},
			Orders:    []domain.Order{},
		},
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/v1/user/profile", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	got := rec.Body.String()
	if !strings.Contains(got, `"name":"Crio User"`) || !strings.Contains(got, `"balance":5000`) {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestUpdateProfileHandler_NoFields(t *testing.T) {
	router := testRouter(t, userDeps(&stubUserSvc{updateErr: usersvc.ErrNoProfileFields}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/user/profile", `{}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "No valid fields to update") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdateProfileHandler_PartialUpdate(t *testing.T) {
	users := &stubUserSvc{profile: usersvc.Profile{Username: "crio-user", Name: "New Name"}}
	router := testRouter(t, userDeps(users))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/v1/user/profile", `{"name":"New Name"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if users.lastName == nil || *users.lastName != "New Name" {
		t.Fatalf("expected name forwarded, got %v", users.lastName)
	}
	if users.lastMobile != nil {
		t.Fatalf("expected mobile to stay nil, got %q", *users.lastMobile)
	}
}
