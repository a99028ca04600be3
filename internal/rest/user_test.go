package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillCompare/business/user"
	"skillCompare/domain"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserService struct {
	registered []user.RegisterInput
	loggedOut  string
}

func (f *fakeUserService) Register(_ context.Context, in user.RegisterInput) (domain.User, error) {
	for _, r := range f.registered {
		if r.Email == in.Email {
			return domain.User{}, domain.ErrEmailExists
		}
	}
	f.registered = append(f.registered, in)
	return domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: domain.RoleUser}, nil
}

func (f *fakeUserService) Login(_ context.Context, email, password, _, _ string) (string, domain.User, error) {
	if email != "ada@example.com" || password != "correct-horse" {
		return "", domain.User{}, domain.ErrBadCredentials
	}
	return "token", domain.User{ID: "u1", Email: email}, nil
}

func (f *fakeUserService) Logout(_ context.Context, userID, _ string) error {
	f.loggedOut = userID
	return nil
}

func (f *fakeUserService) GetUserByID(_ context.Context, id string) (domain.User, error) {
	if id != "u1" {
		return domain.User{}, domain.ErrUserNotFound
	}
	return domain.User{ID: id}, nil
}

func TestRegister(t *testing.T) {
	h := NewUserHandler(&fakeUserService{})

	rec := postJSON(t, h.Register, `{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correct-horse")

	rec = postJSON(t, h.Register, `{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = postJSON(t, h.Register, `{"name":"Ada","email":"ada@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Register, `{"name":"Ada","email":"nope","password":"correct-horse"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	h := NewUserHandler(&fakeUserService{})

	rec := postJSON(t, h.Login, `{"email":"ada@example.com","password":"correct-horse"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token":"token"`)

	rec = postJSON(t, h.Login, `{"email":"ada@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutAndMe(t *testing.T) {
	svc := &fakeUserService{}
	h := NewUserHandler(svc)
	e := echo.New()

	rec := httptest.NewRecorder()
	require.NoError(t, h.Logout(e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	c.Set("user_id", "u1")
	c.Set("token", "token")
	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", svc.loggedOut)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set("user_id", "u1")
	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set("user_id", "ghost")
	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
