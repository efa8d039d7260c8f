package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/notify"
	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned by Login for an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidHorizon is returned when a projection is asked for a non-positive or too long horizon
	ErrInvalidHorizon = errors.New("invalid projection horizon")
	// ErrValidation wraps input validation failures
	ErrValidation = errors.New("validation failed")
)

// Store is the persistence the service depends on
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUserIDs(ctx context.Context) ([]int64, error)

	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	ListActiveAccounts(ctx context.Context) ([]models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account) error
	DeactivateAccount(ctx context.Context, id int64) error
	AdjustBalance(ctx context.Context, accountID, userID int64, balance float64, notes string) (*models.BalanceHistory, error)
	ListBalanceHistory(ctx context.Context, accountID int64, limit int) ([]models.BalanceHistory, error)

	CreateTransaction(ctx context.Context, t *models.Transaction) error
	ListTransactions(ctx context.Context, from, to time.Time) ([]models.Transaction, error)

	CreateAlert(ctx context.Context, alert *models.Alert) error
	ListAlertsSince(ctx context.Context, userID int64, since time.Time) ([]models.Alert, error)
	ListActiveAlerts(ctx context.Context, userID int64) ([]models.Alert, error)
	CountActiveAlerts(ctx context.Context, userID int64) (int, error)
	DismissAlert(ctx context.Context, userID, alertID int64) error

	GetSettings(ctx context.Context) (models.Settings, error)
	UpdateSettings(ctx context.Context, settings models.Settings) error
	GetExchangeRate(ctx context.Context, from, to string) (*models.ExchangeRate, error)
	UpsertExchangeRate(ctx context.Context, rate *models.ExchangeRate) error
}

// RateProvider returns the current USD to GTQ rate
type RateProvider interface {
	ReferenceRate(ctx context.Context) (float64, error)
}

// Service handles business logic
type Service struct {
	repo     Store
	log      *logrus.Logger
	config   *config.Config
	rates    RateProvider
	notifier notify.Notifier
	validate *validator.Validate
	now      func() time.Time
}

// NewService initializes a new service. rates and notifier may be nil.
func NewService(repo Store, log *logrus.Logger, cfg *config.Config, rates RateProvider, notifier notify.Notifier) *Service {
	return &Service{
		repo:     repo,
		log:      log,
		config:   cfg,
		rates:    rates,
		notifier: notifier,
		validate: validator.New(),
		now:      time.Now,
	}
}

// RegisterInput is the payload of a user registration
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

func (s *Service) check(in any) error {
	if err := s.validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
