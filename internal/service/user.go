package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/akozhevnikov/coffeeshop/internal/auth"
	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/server/storage"
	"github.com/akozhevnikov/coffeeshop/internal/validation"
)

// UserService обслуживает профиль пользователя и admin-операции
// над пользователями
type UserService struct {
	logger *slog.Logger
	users  storage.UserStorage
	orders storage.OrderStorage
}

// NewUserService создает новый UserService
func NewUserService(logger *slog.Logger, users storage.UserStorage, orders storage.OrderStorage) *UserService {
	return &UserService{
		logger: logger,
		users:  users,
		orders: orders,
	}
}

// Profile возвращает профиль пользователя без хеша пароля
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user.Public(), nil
}

// UpdateProfile обновляет username и/или email.
// Пустое поле означает "не менять". Каждое поле валидируется и
// проверяется на уникальность среди остальных пользователей.
func (s *UserService) UpdateProfile(ctx context.Context, userID, username, email string) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if username != "" {
		if err := validation.ValidateUsername(username); err != nil {
			return nil, invalidInput(err.Error())
		}
		trimmed := validation.NormalizeUsername(username)

		existing, err := s.users.GetUserByUsername(ctx, trimmed)
		if err == nil && existing.ID != userID {
			return nil, usernameConflict()
		} else if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}

		user.Username = trimmed
	}

	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, invalidInput(err.Error())
		}
		cleaned := validation.NormalizeEmail(email)

		existing, err := s.users.GetUserByEmail(ctx, cleaned)
		if err == nil && existing.ID != userID {
			return nil, emailConflict()
		} else if err != nil && !errors.Is(err, storage.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}

		user.Email = cleaned
	}

	user.UpdatedAt = time.Now()

	if err := s.users.UpdateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrEmailTaken):
			return nil, emailConflict()
		case errors.Is(err, storage.ErrUsernameTaken):
			return nil, usernameConflict()
		case errors.Is(err, storage.ErrUserNotFound):
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user.Public(), nil
}

// ChangePassword меняет пароль после проверки старого.
// Неверный старый пароль — ошибка валидации запроса (400),
// а не провал аутентификации: bearer-токен уже проверен.
func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return invalidInput("old and new passwords are required")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(oldPassword, user.PasswordHash) {
		return invalidInput("wrong old password")
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return invalidInput(err.Error())
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

	s.logger.InfoContext(ctx, "password updated", slog.String("user_id", userID))

	return nil
}

// ListUsers возвращает всех пользователей кроме вызывающего,
// без хешей паролей
func (s *UserService) ListUsers(ctx context.Context, excludeID string) ([]*models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	result := make([]*models.User, 0, len(users))
	for _, user := range users {
		if user.ID == excludeID {
			continue
		}
		result = append(result, user.Public())
	}

	return result, nil
}

// DeleteUser удаляет пользователя по id
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.InfoContext(ctx, "user deleted", slog.String("user_id", userID))

	return nil
}

// UserOrders возвращает заказы пользователя
func (s *UserService) UserOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	orders, err := s.orders.GetUserOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	return orders, nil
}
