package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/auth"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/google/uuid"
)

// Store 用户持久化接口（*Repo 实现）。
type Store interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
}

// BookingCounter 删除用户前检查是否仍有预订引用。
type BookingCounter interface {
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type Service struct {
	store    Store
	bookings BookingCounter
	authCfg  config.AuthConfig
}

func NewService(store Store, bookings BookingCounter, authCfg config.AuthConfig) *Service {
	return &Service{store: store, bookings: bookings, authCfg: authCfg}
}

// RegisterInput 注册入参。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return nil, apperr.New(apperr.KindValidation, "name, email and password are required")
	}

	role := NormalizeRole(in.Role)
	if !role.Valid() {
		return nil, apperr.New(apperr.KindValidation, "invalid role")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// LoginResult 登录结果。
type LoginResult struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}

// Login 校验凭证并签发 access token。用户不存在与密码错误返回同一错误。
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.New(apperr.KindValidation, "Email and password are required")
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, u.Password) {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid credentials")
	}

	token, exp, err := auth.GenerateAccessToken(s.authCfg, u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "id required")
	}
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]User, int64, error) {
	if s == nil || s.store == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.store.List(ctx, offset, limit)
}

// UpdateInput 更新入参；nil 字段不修改。
type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*User, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	u, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		u.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		u.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if in.Role != nil {
		role := NormalizeRole(*in.Role)
		if !role.Valid() {
			return nil, apperr.New(apperr.KindValidation, "invalid role")
		}
		u.Role = role
	}

	if err := s.store.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete 删除用户；仍被预订引用时拒绝。
func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return err
	}
	if s.bookings != nil {
		n, err := s.bookings.CountByUser(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.New(apperr.KindValidation, "User has bookings and cannot be deleted")
		}
	}
	return s.store.Delete(ctx, id)
}
