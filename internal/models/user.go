package models

import "time"

// Роли пользователей. Значения совпадают с тем, что хранится в БД
// и кладется в JWT claims.
const (
	RoleUser      = "user"
	RoleAdmin     = "admin"
	RolePremium   = "premium user"
	RoleModerator = "moderator"
)

// ValidRole проверяет, что роль входит в список допустимых
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleAdmin, RolePremium, RoleModerator:
		return true
	}
	return false
}

// User представляет пользователя в системе
type User struct {
	ID           string    `json:"id"`              // UUID пользователя
	Username     string    `json:"username"`        // уникальный username (2-32 символа, trimmed)
	Email        string    `json:"email"`           // уникальный email (lowercase, trimmed)
	PasswordHash string    `json:"-"`               // bcrypt хеш пароля, никогда не сериализуется
	Role         string    `json:"role"`            // user | admin | premium user | moderator
	Phone        string    `json:"phone,omitempty"` // только для admin аккаунтов, формат +7XXXXXXXXXX
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Public возвращает копию пользователя без хеша пароля.
// Использовать для всех ответов, пересекающих границу сервиса.
func (u *User) Public() *User {
	pub := *u
	pub.PasswordHash = ""
	return &pub
}
