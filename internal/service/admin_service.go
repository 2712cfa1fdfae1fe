package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/techsanasilver/SanaSilver/internal/auth"
	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
)

var (
	// ErrUnauthorized единый ответ на неизвестный email, неактивную учётку и
	// неверный пароль, чтобы не раскрывать существование аккаунта
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrForbidden аутентифицирован, но прав недостаточно
	ErrForbidden = errors.New("forbidden")
)

// AdminService реализует жизненный цикл учётных записей: регистрация, вход,
// выход через инкремент версии токена, смена пароля, обновление профиля.
// Все мутации идут через транзакцию: версия токена строго растёт и не может
// откатиться конкурентной записью устаревшего снимка.
type AdminService struct {
	admins     repository.AdminRepository
	tx         repository.TxManager
	issuer     auth.TokenIssuer
	bcryptCost int
}

func NewAdminService(admins repository.AdminRepository, tx repository.TxManager, issuer auth.TokenIssuer, bcryptCost int) *AdminService {
	return &AdminService{admins: admins, tx: tx, issuer: issuer, bcryptCost: bcryptCost}
}

// RegisterInput данные новой учётной записи
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     domain.Role
}

// Register создаёт администратора. Права снимаются с таблицы ролей,
// пароль хешируется ровно один раз, дайджест наружу не отдаётся.
func (s *AdminService) Register(ctx context.Context, in RegisterInput) (*domain.Admin, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || len(in.Password) < 8 {
		return nil, ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = domain.RoleStaff // lowest privilege by default
	}
	if !in.Role.Valid() {
		return nil, ErrInvalidInput
	}
	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	a := domain.Admin{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Role:         in.Role,
		Permissions:  auth.PermissionsFor(in.Role),
		Active:       true,
		TokenVersion: 1,
	}
	if err := s.admins.Create(ctx, &a); err != nil {
		return nil, err
	}
	a.PasswordHash = ""
	return &a, nil
}

// Login сверяет пароль и выпускает пару токенов
func (s *AdminService) Login(ctx context.Context, email, password string) (*domain.Admin, string, string, error) {
	found, err := s.admins.GetByEmail(ctx, email)
	if err != nil || !found.Active || !auth.CheckPassword(found.PasswordHash, password) {
		return nil, "", "", ErrUnauthorized
	}
	// re-read and stamp under the transaction so a concurrent version bump
	// is never overwritten by this snapshot
	var a *domain.Admin
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cur, err := s.admins.GetByID(ctx, found.ID)
		if err != nil {
			return ErrUnauthorized
		}
		cur.LastLoginAt = time.Now().UTC()
		if err := s.admins.Update(ctx, cur); err != nil {
			return err
		}
		a = cur
		return nil
	})
	if err != nil {
		return nil, "", "", err
	}
	access, err := s.issuer.IssueAccess(a)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := s.issuer.IssueRefresh(a)
	if err != nil {
		return nil, "", "", err
	}
	a.PasswordHash = ""
	return a, access, refresh, nil
}

// Logout повышает версию токена, отзывая все выпущенные refresh-токены.
// Повторный вызов безопасен.
func (s *AdminService) Logout(ctx context.Context, id string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return err
		}
		a.TokenVersion++
		return s.admins.Update(ctx, a)
	})
}

// RefreshAccess проверяет refresh-токен и выпускает новый access-токен.
// Сам refresh-токен не ротируется.
func (s *AdminService) RefreshAccess(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return "", ErrUnauthorized
	}
	a, err := s.admins.GetByID(ctx, claims.AdminID)
	if err != nil || !a.Active || a.TokenVersion != claims.TokenVersion {
		return "", ErrUnauthorized
	}
	return s.issuer.IssueAccess(a)
}

// ChangePassword перехеширует пароль и повышает версию токена одной записью,
// чтобы устаревший refresh не проскочил между ними
func (s *AdminService) ChangePassword(ctx context.Context, id, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrInvalidInput
	}
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !auth.CheckPassword(a.PasswordHash, oldPassword) {
			return ErrInvalidInput
		}
		hash, err := auth.HashPassword(newPassword, s.bcryptCost)
		if err != nil {
			return err
		}
		a.PasswordHash = hash
		a.TokenVersion++
		return s.admins.Update(ctx, a)
	})
}

// UpdateProfileInput частичное обновление; nil-поля не трогаются
type UpdateProfileInput struct {
	Name  *string
	Phone *string
}

// UpdateProfile меняет только имя и телефон; роль и права через этот путь недостижимы
func (s *AdminService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.Admin, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, ErrInvalidInput
	}
	var a *domain.Admin
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		cur, err := s.admins.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			cur.Name = *in.Name
		}
		if in.Phone != nil {
			cur.Phone = *in.Phone
		}
		if err := s.admins.Update(ctx, cur); err != nil {
			return err
		}
		a = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.PasswordHash = ""
	return a, nil
}

// ValidateAccess проверяет access-токен и возвращает действующего администратора
func (s *AdminService) ValidateAccess(ctx context.Context, token string) (*domain.Admin, error) {
	claims, err := s.issuer.ParseAccess(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	a, err := s.admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !a.Active {
		return nil, ErrForbidden
	}
	a.PasswordHash = ""
	return a, nil
}

// ListAdmins возвращает все учётные записи без дайджестов паролей
func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	list, err := s.admins.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].PasswordHash = ""
	}
	return list, nil
}

// GetAdmin возвращает учётную запись без дайджеста пароля
func (s *AdminService) GetAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	a, err := s.admins.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.PasswordHash = ""
	return a, nil
}
