package user

import (
	"context"
	"errors"
	"strconv"
	"time"

	"brewAdvisor/domain"
	redisRepo "brewAdvisor/internal/repository/redis"
	"brewAdvisor/pkg/logger"
	"brewAdvisor/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateWeeklyBudget(ctx context.Context, id uint, weeklyBudget float64) error
}

// TokenRepository contract interface
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, data redisRepo.TokenData, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

type userService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	validate  *validator.Validate
	tokenTTL  time.Duration
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	defaultTokenTTL = 24 * time.Hour

	// starting allowance for new accounts, matching the users table default
	defaultWeeklyBudget = 25.0
)

func NewUserService(
	userRepo UserRepository,
	tokenRepo TokenRepository,
	validate *validator.Validate,
) *userService {
	return &userService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		validate:  validate,
		tokenTTL:  defaultTokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Username, "required,min=3"); err != nil {
		logger.Error("Invalid username", err)
		return domain.User{}, errors.New("username must be at least 3 characters")
	}

	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	// Check if username already exists
	existingUser, err := s.userRepo.FindByUsername(ctx, user.Username)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Username already exists")
		return domain.User{}, errors.New("username already exists")
	}

	existingUser, err = s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existingUser.ID > 0 {
		logger.Error("Email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Username:     user.Username,
		Email:        user.Email,
		Password:     string(passwordHash),
		Role:         RoleCustomer,
		WeeklyBudget: defaultWeeklyBudget,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, username, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, errors.New("invalid username or password")
	}

	ok := utils.CheckPassword(password, user.Password)
	if !ok {
		logger.Error("User password incorrect")
		return "", domain.User{}, errors.New("invalid username or password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, s.tokenTTL)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	now := time.Now()
	tokenData := redisRepo.TokenData{
		UserID:    userIDStr,
		Role:      user.Role,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.tokenTTL),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := s.tokenRepo.StoreToken(ctx, userIDStr, token, tokenData, s.tokenTTL); err != nil {
		logger.Error("Failed to store token", err)
		return "", domain.User{}, errors.New("failed to store session")
	}

	user.Password = ""
	return token, user, nil
}

// ValidateTokenFromRedis checks the session store and returns the owning
// user ID. Used by the auth middleware.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	userID, err := s.tokenRepo.ValidateToken(ctx, token)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIDStr := strconv.FormatUint(uint64(userID), 10)

	if err := s.tokenRepo.DeleteToken(ctx, userIDStr, token); err != nil {
		logger.Error("Failed to delete token", err)
		return err
	}

	return nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to get user by ID", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}

// UpdateWeeklyBudget sets a new weekly allowance for the user.
func (s *userService) UpdateWeeklyBudget(ctx context.Context, id uint, weeklyBudget float64) (domain.User, error) {
	if weeklyBudget <= 0 {
		return domain.User{}, errors.New("weekly budget must be positive")
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		logger.Error("User not found for budget update", err)
		return domain.User{}, err
	}

	if err := s.userRepo.UpdateWeeklyBudget(ctx, id, weeklyBudget); err != nil {
		logger.Error("Failed to update weekly budget", err)
		return domain.User{}, err
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
