package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

var (
	// ErrTokenExpired возвращается для подлинного, но просроченного токена
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid возвращается при неверной подписи или повреждённом токене
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessClaims полезная нагрузка access-токена
type AccessClaims struct {
	AdminID     string   `json:"aid"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"perms"`
	jwt.RegisteredClaims
}

// RefreshClaims полезная нагрузка refresh-токена; TokenVersion сверяется
// с текущим значением у администратора
type RefreshClaims struct {
	AdminID      string `json:"aid"`
	TokenVersion int64  `json:"ver"`
	jwt.RegisteredClaims
}

// TokenIssuer выпускает и проверяет подписанные токены. Секреты access и
// refresh различаются, поэтому токен одного класса не пройдёт проверку другого.
type TokenIssuer struct {
	AccessKey  []byte
	RefreshKey []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// IssueAccess выпускает короткоживущий access-токен со снимком прав
func (t TokenIssuer) IssueAccess(a *domain.Admin) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		AdminID:     a.ID,
		Email:       a.Email,
		Role:        string(a.Role),
		Permissions: a.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.AccessKey)
}

// IssueRefresh выпускает долгоживущий refresh-токен с текущей версией
func (t TokenIssuer) IssueRefresh(a *domain.Admin) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		AdminID:      a.ID,
		TokenVersion: a.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.RefreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.RefreshKey)
}

// ParseAccess проверяет подпись и срок access-токена
func (t TokenIssuer) ParseAccess(token string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := t.parse(token, claims, t.AccessKey); err != nil {
		return nil, err
	}
	return claims, nil
}

// ParseRefresh проверяет подпись и срок refresh-токена
func (t TokenIssuer) ParseRefresh(token string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := t.parse(token, claims, t.RefreshKey); err != nil {
		return nil, err
	}
	return claims, nil
}

func (t TokenIssuer) parse(token string, claims jwt.Claims, key []byte) error {
	parsed, err := jwt.ParseWithClaims(token, claims, func(tk *jwt.Token) (interface{}, error) {
		if _, ok := tk.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}
	if !parsed.Valid {
		return ErrTokenInvalid
	}
	return nil
}
