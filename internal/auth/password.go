package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost рабочий фактор хеширования по умолчанию
const DefaultBcryptCost = 10

// HashPassword хеширует пароль bcrypt-ом; открытый текст нигде не сохраняется
func HashPassword(plaintext string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultBcryptCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword сверяет пароль с сохранённым дайджестом
func CheckPassword(digest, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
