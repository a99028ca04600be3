package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillCompare/domain"
	"skillCompare/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrEmailExists
	}
	u.ID = uuid.NewString()
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (domain.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) UpsertByEmail(_ context.Context, u *domain.User) error {
	if existing, ok := f.byEmail[u.Email]; ok {
		u.ID = existing.ID
	} else {
		u.ID = uuid.NewString()
	}
	f.byEmail[u.Email] = *u
	return nil
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (f *fakeNotifier) SendWelcome(_ context.Context, _, email string) error {
	f.sent = append(f.sent, email)
	return f.err
}

type fakeTokens struct {
	stored  []domain.TokenData
	deleted []string
}

func (f *fakeTokens) StoreToken(_ context.Context, data domain.TokenData, _ time.Duration) error {
	f.stored = append(f.stored, data)
	return nil
}

func (f *fakeTokens) ValidateToken(_ context.Context, token string) (string, error) {
	for _, d := range f.stored {
		if d.Token == token {
			return d.UserID, nil
		}
	}
	return "", errors.New("token not found or expired")
}

func (f *fakeTokens) DeleteToken(_ context.Context, _, token string) error {
	f.deleted = append(f.deleted, token)
	return nil
}

func init() {
	utils.SetJWTConfig("test-secret", time.Hour)
}

func TestRegister(t *testing.T) {
	repo, notifier := newFakeUserRepo(), &fakeNotifier{}
	svc := NewUserService(repo, validator.New(), notifier, nil)

	u, err := svc.Register(context.Background(), RegisterInput{Name: "Ada Lovelace", Email: " Ada@Example.com ", Password: "s3cretpass"})

	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.Empty(t, u.Password)
	assert.True(t, utils.CheckPassword("s3cretpass", repo.byEmail["ada@example.com"].Password))
	assert.Equal(t, []string{"ada@example.com"}, notifier.sent)
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), validator.New(), nil, nil)

	cases := []RegisterInput{
		{Name: "A", Email: "a@example.com", Password: "longenough"},
		{Name: "Ada", Email: "not-an-email", Password: "longenough"},
		{Name: "Ada", Email: "a@example.com", Password: "short"},
	}
	for _, in := range cases {
		_, err := svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), validator.New(), nil, nil)
	in := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "longenough"}

	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrEmailExists)
}

func TestRegister_WelcomeFailureIsIgnored(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), validator.New(), &fakeNotifier{err: errors.New("mailjet down")}, nil)

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "longenough"})

	assert.NoError(t, err)
}

func TestLoginAndLogout(t *testing.T) {
	ctx := context.Background()
	tokens := &fakeTokens{}
	svc := NewUserService(newFakeUserRepo(), validator.New(), nil, tokens)
	registered, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "longenough"})
	require.NoError(t, err)

	token, u, err := svc.Login(ctx, "ada@example.com", "longenough", "127.0.0.1", "test")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, u.ID)
	assert.Empty(t, u.Password)

	claims, err := utils.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	require.Len(t, tokens.stored, 1)
	assert.Equal(t, "127.0.0.1", tokens.stored[0].IPAddress)

	userID, err := svc.ValidateTokenFromRedis(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)

	require.NoError(t, svc.Logout(ctx, u.ID, token))
	assert.Equal(t, []string{token}, tokens.deleted)
}

func TestLogin_BadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(newFakeUserRepo(), validator.New(), nil, nil)
	_, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrong-password", "", "")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "longenough", "", "")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestCreateAdmin_PromotesExisting(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, validator.New(), nil, nil)
	registered, err := svc.Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "longenough"})
	require.NoError(t, err)

	admin, err := svc.CreateAdmin(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "anotherpass"})

	require.NoError(t, err)
	assert.Equal(t, registered.ID, admin.ID)
	assert.True(t, repo.byEmail["ada@example.com"].IsAdmin())
	assert.True(t, utils.CheckPassword("anotherpass", repo.byEmail["ada@example.com"].Password))
}
