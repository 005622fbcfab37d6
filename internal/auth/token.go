package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Типизированные ошибки валидации токена. Истекший токен отличаем от
// невалидного: caller может захотеть показать разное сообщение.
var (
	// ErrTokenExpired токен корректно подписан, но срок действия истек
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid токен поврежден, подделан или подписан другим ключом
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims представляет identity-данные, зашитые в JWT
type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService выпускает и проверяет подписанные JWT токены.
// Секрет передается явно при создании — никаких ambient-переменных,
// сервис тестируется с любым ключом.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService создает TokenService с указанным секретом и TTL токена.
// ttl <= 0 заменяется на сутки (дефолт исходной системы).
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL возвращает время жизни выпускаемых токенов
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue выпускает подписанный токен с дефолтным TTL сервиса
func (s *TokenService) Issue(userID, username, role string) (string, error) {
	return s.IssueWithTTL(userID, username, role, s.ttl)
}

// IssueWithTTL выпускает подписанный токен с явным сроком жизни.
// Используется для короткоживущих reset-токенов.
func (s *TokenService) IssueWithTTL(userID, username, role string, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// resetSubject маркирует reset-токены: access-токен нельзя использовать
// для сброса пароля и наоборот
const resetSubject = "password_reset"

// ResetTokenTTL время жизни токена сброса пароля
const ResetTokenTTL = time.Hour

// IssuePasswordReset выпускает короткоживущий токен сброса пароля
func (s *TokenService) IssuePasswordReset(userID, username string) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   resetSubject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ResetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign reset token: %w", err)
	}

	return signed, nil
}

// VerifyPasswordReset проверяет токен сброса пароля
func (s *TokenService) VerifyPasswordReset(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject != resetSubject {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Verify проверяет подпись и срок действия access-токена.
// Возвращает claims либо ErrTokenExpired / ErrTokenInvalid.
// Никогда не паникует на мусорном входе.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Subject == resetSubject {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC: токен с alg=none или RS256 отклоняем
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}
