package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost — work factor bcrypt для хеширования паролей
const PasswordCost = 10

// HashPassword хеширует пароль через bcrypt.
// Соль генерируется внутри bcrypt на каждый вызов, два хеша одного
// пароля не совпадают.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword проверяет пароль против сохраненного хеша.
// На несовпадении возвращает false, не ошибку.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
