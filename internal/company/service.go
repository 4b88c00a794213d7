package company

import (
	"context"
	"fmt"
	"strings"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/google/uuid"
)

// Store 公司资料持久化接口（*Repo 实现）。
type Store interface {
	First(ctx context.Context) (*Company, error)
	Save(ctx context.Context, c *Company) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context) (*Company, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	return s.store.First(ctx)
}

// Input 创建或更新公司资料的入参。
type Input struct {
	Name        string
	Description string
	Address     string
	Phone       string
	Email       string
	Website     string
	TaxID       string
}

// Create 首次配置公司资料；已存在时报冲突。
func (s *Service) Create(ctx context.Context, in Input) (*Company, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.KindValidation, "company name is required")
	}

	if _, err := s.store.First(ctx); err == nil {
		return nil, apperr.New(apperr.KindConflict, "Company profile already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	c := &Company{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Address:     strings.TrimSpace(in.Address),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Website:     strings.TrimSpace(in.Website),
		TaxID:       strings.TrimSpace(in.TaxID),
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateInput 更新入参；nil 字段不修改。
type UpdateInput struct {
	Name        *string
	Description *string
	Address     *string
	Phone       *string
	Email       *string
	Website     *string
	TaxID       *string
}

func (s *Service) Update(ctx context.Context, in UpdateInput) (*Company, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, err := s.store.First(ctx)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		c.Description = strings.TrimSpace(*in.Description)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Website != nil {
		c.Website = strings.TrimSpace(*in.Website)
	}
	if in.TaxID != nil {
		c.TaxID = strings.TrimSpace(*in.TaxID)
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
