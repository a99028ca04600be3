package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skillCompare/domain"
	"skillCompare/pkg/logger"
	"skillCompare/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpsertByEmail(ctx context.Context, user *domain.User) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendWelcome(ctx context.Context, name, email string) error
}

// TokenRepository keeps issued tokens so they can be revoked.
type TokenRepository interface {
	StoreToken(ctx context.Context, data domain.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo  UserRepository
	validate  *validator.Validate
	notifRepo NotificationRepository
	tokenRepo TokenRepository
}

// NewUserService accepts nil notifRepo and tokenRepo when mail or Redis
// are not configured.
func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
) *userService {
	return &userService{
		userRepo:  userRepo,
		validate:  validate,
		notifRepo: notifRepo,
		tokenRepo: tokenRepo,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
}

func (s *userService) validateAccount(in RegisterInput) error {
	if err := s.validate.Var(strings.TrimSpace(in.Name), "required,min=2"); err != nil {
		logger.Error("Invalid user name", err)
		return invalid("name must be at least 2 characters")
	}

	if err := s.validate.Var(in.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return invalid("invalid email format")
	}

	if err := s.validate.Var(in.Password, "required,min=8"); err != nil {
		logger.Error("Invalid user password", err)
		return invalid("password must be at least 8 characters")
	}

	return nil
}

func (s *userService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validateAccount(in); err != nil {
		return domain.User{}, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		logger.Error("Email already exists")
		return domain.User{}, domain.ErrEmailExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		logger.Error("Failed to check email", err)
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: string(passwordHash),
		Role:     domain.RoleUser,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	if s.notifRepo != nil {
		if err := s.notifRepo.SendWelcome(ctx, newUser.Name, newUser.Email); err != nil {
			logger.Warn("Failed to send welcome email", err)
		}
	}

	newUser.Password = ""
	return newUser, nil
}

// CreateAdmin creates an administrator, or promotes and resets the
// password of an existing account with the same email.
func (s *userService) CreateAdmin(ctx context.Context, in RegisterInput) (domain.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validateAccount(in); err != nil {
		return domain.User{}, err
	}

	passwordHash, err := utils.HashPassword(in.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	admin := domain.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    in.Email,
		Password: string(passwordHash),
		Role:     domain.RoleAdmin,
	}
	if err := s.userRepo.UpsertByEmail(ctx, &admin); err != nil {
		logger.Error("Failed to create admin", err)
		return domain.User{}, err
	}

	admin.Password = ""
	return admin, nil
}

func (s *userService) Login(ctx context.Context, email, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		logger.Error("Invalid user credentials", err)
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, domain.ErrBadCredentials
		}
		return "", domain.User{}, err
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("User password incorrect", "user_id", user.ID)
		return "", domain.User{}, domain.ErrBadCredentials
	}

	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		logger.Error("Failed to generated token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if s.tokenRepo != nil {
		now := time.Now()
		ttl := utils.JWTTTL()
		err := s.tokenRepo.StoreToken(ctx, domain.TokenData{
			UserID:    user.ID,
			Role:      user.Role,
			Token:     token,
			IssuedAt:  now,
			ExpiresAt: now.Add(ttl),
			IPAddress: ipAddress,
			UserAgent: userAgent,
		}, ttl)
		if err != nil {
			logger.Error("Failed to store token", err)
			return "", domain.User{}, errors.New("failed to store token")
		}
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if s.tokenRepo == nil {
		return "", errors.New("token store not configured")
	}
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) Logout(ctx context.Context, userID, token string) error {
	if s.tokenRepo == nil {
		return nil
	}

	if err := s.tokenRepo.DeleteToken(ctx, userID, token); err != nil {
		logger.Error("Failed to revoke token", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
