package service

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/akozhevnikov/coffeeshop/internal/models"
	"github.com/akozhevnikov/coffeeshop/internal/server/storage"
)

// testLogger creates a logger for testing
func testLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelError}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// mockUserStorage is an in-memory UserStorage implementation for testing
type mockUserStorage struct {
	users       map[string]*models.User // id -> user
	createError error
	getError    error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
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
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
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
	for id, existing := range m.users {
		if id == user.ID {
			continue
		}
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

// mockOrderStorage is an in-memory OrderStorage implementation for testing
type mockOrderStorage struct {
	orders      []*models.Order
	createError error
}

func (m *mockOrderStorage) CreateOrder(ctx context.Context, order *models.Order) error {
	if m.createError != nil {
		return m.createError
	}
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

// sentEmail records a single notifier call
type sentEmail struct {
	kind     string // "welcome", "order", "reset"
	email    string
	username string
	token    string
	order    *models.Order
}

// mockNotifier records notification calls instead of sending anything
type mockNotifier struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (m *mockNotifier) SendWelcomeEmail(email, username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{kind: "welcome", email: email, username: username})
}

func (m *mockNotifier) SendOrderConfirmationEmail(email, username string, order *models.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{kind: "order", email: email, username: username, order: order})
}

func (m *mockNotifier) SendPasswordResetEmail(email, username, resetToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentEmail{kind: "reset", email: email, username: username, token: resetToken})
}

func (m *mockNotifier) byKind(kind string) []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []sentEmail
	for _, email := range m.sent {
		if email.kind == kind {
			result = append(result, email)
		}
	}
	return result
}
