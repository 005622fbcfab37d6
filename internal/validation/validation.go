package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// EmailPattern — базовая синтаксическая проверка email.
// Полная RFC-валидация не нужна: уникальность и доставляемость
// проверяются на других уровнях.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PhonePattern определяет формат телефона admin-аккаунта:
// +7 и ровно 10 цифр после
var PhonePattern = regexp.MustCompile(`^\+7\d{10}$`)

const (
	// MinUsernameLen минимальная длина username
	MinUsernameLen = 2
	// MaxUsernameLen максимальная длина username
	MaxUsernameLen = 32
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6
)

// NormalizeEmail приводит email к каноничному виду: lowercase + trim
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeUsername убирает пробелы по краям
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// ValidateEmail проверяет синтаксис email (до нормализации или после —
// паттерн нечувствителен к регистру букв)
func ValidateEmail(email string) error {
	if !EmailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidateUsername проверяет длину username после trim.
// Длина: 2-32 символа
func ValidateUsername(username string) error {
	trimmed := strings.TrimSpace(username)
	if len(trimmed) < MinUsernameLen || len(trimmed) > MaxUsernameLen {
		return fmt.Errorf("username must be %d-%d characters", MinUsernameLen, MaxUsernameLen)
	}
	return nil
}

// ValidatePassword проверяет минимальную длину пароля
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// ValidatePhone проверяет телефон admin-аккаунта.
// Формат: +7 и 10 цифр (всего 12 символов)
func ValidatePhone(phone string) error {
	if !PhonePattern.MatchString(phone) {
		return fmt.Errorf("phone number must start with +7 and be 12 digits total")
	}
	return nil
}
