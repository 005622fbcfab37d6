package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/akozhevnikov/coffeeshop/internal/auth"
	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/server/storage"
	"github.com/akozhevnikov/coffeeshop/internal/validation"
)

// Notifier отправляет транзакционные письма. Все методы fire-and-forget:
// ничего не возвращают, сбой доставки не влияет на вызывающую операцию.
type Notifier interface {
	SendWelcomeEmail(email, username string)
	SendOrderConfirmationEmail(email, username string, order *models.Order)
	SendPasswordResetEmail(email, username, resetToken string)
}

// AuthService оркестрирует регистрацию и логин: валидация входа,
// проверка уникальности, хеширование пароля, выпуск токена
type AuthService struct {
	logger   *slog.Logger
	users    storage.UserStorage
	tokens   *auth.TokenService
	notifier Notifier
}

// NewAuthService создает новый AuthService
func NewAuthService(logger *slog.Logger, users storage.UserStorage, tokens *auth.TokenService, notifier Notifier) *AuthService {
	return &AuthService{
		logger:   logger,
		users:    users,
		tokens:   tokens,
		notifier: notifier,
	}
}

// RegisterUser регистрирует обычного пользователя и выпускает токен.
// Пайплайн линейный, выход на первой ошибке; welcome email уходит
// асинхронно, его результат регистрацию не затрагивает.
func (s *AuthService) RegisterUser(ctx context.Context, username, email, password string) (string, *models.User, error) {
	if username == "" || email == "" || password == "" {
		return "", nil, invalidInput("username, email, password are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return "", nil, invalidInput(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return "", nil, invalidInput(err.Error())
	}
	if err := validation.ValidateUsername(username); err != nil {
		return "", nil, invalidInput(err.Error())
	}

	user, err := s.createUser(ctx, username, email, password, models.RoleUser, "")
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	s.notifier.SendWelcomeEmail(user.Email, user.Username)

	return token, user.Public(), nil
}

// RegisterAdmin регистрирует admin-аккаунт. Токен НЕ выпускается —
// администратор логинится отдельно. Эта асимметрия с RegisterUser
// намеренная.
func (s *AuthService) RegisterAdmin(ctx context.Context, username, email, password, phone string) (*models.User, error) {
	if username == "" || email == "" || password == "" || phone == "" {
		return nil, invalidInput("all fields are required")
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, invalidInput(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, invalidInput(err.Error())
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, invalidInput(err.Error())
	}
	if err := validation.ValidatePhone(phone); err != nil {
		return nil, invalidInput(err.Error())
	}

	user, err := s.createUser(ctx, username, email, password, models.RoleAdmin, phone)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "admin registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	return user.Public(), nil
}

// createUser выполняет общую часть регистрации: проверки уникальности,
// хеширование и создание записи. Проверки и insert не атомарны;
// UNIQUE индексы в хранилище ловят гонку двух одновременных регистраций.
func (s *AuthService) createUser(ctx context.Context, username, email, password, role, phone string) (*models.User, error) {
	email = validation.NormalizeEmail(email)
	username = validation.NormalizeUsername(username)

	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return nil, emailConflict()
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.users.GetUserByUsername(ctx, username); err == nil {
		return nil, usernameConflict()
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrEmailTaken):
			return nil, emailConflict()
		case errors.Is(err, storage.ErrUsernameTaken):
			return nil, usernameConflict()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login аутентифицирует пользователя по email и паролю и выпускает токен
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", invalidInput("email and password are required")
	}

	user, err := s.users.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "login failed: wrong password", slog.String("user_id", user.ID))
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))

	return token, nil
}

// CurrentIdentity возвращает пользователя по id из токена,
// без хеша пароля
func (s *AuthService) CurrentIdentity(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Public(), nil
}

// RequestPasswordReset выпускает reset-токен и отправляет письмо со
// ссылкой. Для неизвестного email молча ничего не делает: существование
// аккаунта наружу не раскрываем.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return invalidInput("email is required")
	}

	user, err := s.users.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			s.logger.InfoContext(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	resetToken, err := s.tokens.IssuePasswordReset(user.ID, user.Username)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	s.notifier.SendPasswordResetEmail(user.Email, user.Username, resetToken)

	return nil
}

// ResetPassword устанавливает новый пароль по действующему reset-токену
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	if resetToken == "" {
		return invalidInput("token is required")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return invalidInput(err.Error())
	}

	claims, err := s.tokens.VerifyPasswordReset(resetToken)
	if err != nil {
		return ErrInvalidCredentials
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.InfoContext(ctx, "password reset completed", slog.String("user_id", user.ID))

	return nil
}
