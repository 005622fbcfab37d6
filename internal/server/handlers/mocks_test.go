package handlers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/akozhevnikov/coffeeshop/internal/auth"
	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/server/storage"
	"github.com/akozhevnikov/coffeeshop/internal/service"
)

// setupTestLogger creates a logger for testing
func setupTestLogger() *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelError,
	}
	handler := slog.NewTextHandler(os.Stdout, opts)
	return slog.New(handler)
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users map[string]*models.User // id -> User
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return storage.ErrEmailTaken
		}
		if existing.Username == user.Username {
			return storage.ErrUsernameTaken
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	user, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *mockUserStorage) UpdateUser(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return storage.ErrUserNotFound
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserStorage) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := m.users[userID]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

func (m *mockUserStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	result := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		clone := *user
		result = append(result, &clone)
	}
	return result, nil
}

// mockOrderStorage is a mock implementation of OrderStorage for testing
type mockOrderStorage struct {
	orders []*models.Order
}

func (m *mockOrderStorage) CreateOrder(ctx context.Context, order *models.Order) error {
	clone := *order
	m.orders = append(m.orders, &clone)
	return nil
}

func (m *mockOrderStorage) GetUserOrders(ctx context.Context, userID string) ([]*models.Order, error) {
	result := []*models.Order{}
	for _, order := range m.orders {
		if order.UserID == userID {
			clone := *order
			result = append(result, &clone)
		}
	}
	return result, nil
}

// noopNotifier discards all notifications
type noopNotifier struct{}

func (noopNotifier) SendWelcomeEmail(email, username string)                               {}
func (noopNotifier) SendOrderConfirmationEmail(email, username string, order *models.Order) {}
func (noopNotifier) SendPasswordResetEmail(email, username, resetToken string)             {}

// testEnv wires real services over in-memory storage
type testEnv struct {
	users  *mockUserStorage
	orders *mockOrderStorage
	tokens *auth.TokenService

	authSvc  *service.AuthService
	userSvc  *service.UserService
	orderSvc *service.OrderService
}

func newTestEnv() *testEnv {
	logger := setupTestLogger()
	users := newMockUserStorage()
	orders := &mockOrderStorage{}
	tokens := auth.NewTokenService("test-secret-key", time.Hour)

	return &testEnv{
		users:    users,
		orders:   orders,
		tokens:   tokens,
		authSvc:  service.NewAuthService(logger, users, tokens, noopNotifier{}),
		userSvc:  service.NewUserService(logger, users, orders),
		orderSvc: service.NewOrderService(logger, users, orders, noopNotifier{}),
	}
}

// seedUser adds a user with a bcrypt hash of the given password
func (e *testEnv) seedUser(id, username, email, password, role string) *models.User {
	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(err)
	}
	user := &models.User{
		ID:           id,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := e.users.CreateUser(context.Background(), user); err != nil {
		panic(err)
	}
	return user
}
