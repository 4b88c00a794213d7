package customer

import (
	"context"
	"fmt"
	"strings"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/google/uuid"
)

// Store 客户档案持久化接口（*Repo 实现）。
type Store interface {
	Create(ctx context.Context, c *Customer) error
	Save(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id string) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindByDocument(ctx context.Context, document string) (*Customer, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]Customer, int64, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateInput 建档入参。
type CreateInput struct {
	Name         string
	Lastname     string
	Document     string
	TypeDocument string
	Phone        string
	Email        string
	IsForeign    bool
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	name := strings.TrimSpace(in.Name)
	lastname := strings.TrimSpace(in.Lastname)
	document := strings.TrimSpace(in.Document)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || lastname == "" || document == "" || email == "" {
		return nil, apperr.New(apperr.KindValidation, "name, lastname, document and email are required")
	}

	c := &Customer{
		ID:           uuid.NewString(),
		Name:         name,
		Lastname:     lastname,
		Document:     document,
		TypeDocument: strings.TrimSpace(in.TypeDocument),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        email,
		IsForeign:    in.IsForeign,
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateInput 更新入参；nil 字段不修改。
type UpdateInput struct {
	Name         *string
	Lastname     *string
	Document     *string
	TypeDocument *string
	Phone        *string
	Email        *string
	IsForeign    *bool
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Lastname != nil && strings.TrimSpace(*in.Lastname) != "" {
		c.Lastname = strings.TrimSpace(*in.Lastname)
	}
	if in.Document != nil && strings.TrimSpace(*in.Document) != "" {
		c.Document = strings.TrimSpace(*in.Document)
	}
	if in.TypeDocument != nil {
		c.TypeDocument = strings.TrimSpace(*in.TypeDocument)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) != "" {
		c.Email = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.IsForeign != nil {
		c.IsForeign = *in.IsForeign
	}

	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "id required")
	}
	return s.store.FindByID(ctx, id)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apperr.New(apperr.KindValidation, "email required")
	}
	return s.store.FindByEmail(ctx, email)
}

func (s *Service) GetByDocument(ctx context.Context, document string) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	document = strings.TrimSpace(document)
	if document == "" {
		return nil, apperr.New(apperr.KindValidation, "document required")
	}
	return s.store.FindByDocument(ctx, document)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("service not initialized")
	}
	return s.store.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]Customer, int64, error) {
	if s == nil || s.store == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	return s.store.List(ctx, offset, limit)
}

// SetBlocked 拉黑或解除拉黑。
func (s *Service) SetBlocked(ctx context.Context, id string, blocked bool) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	c.IsBlocked = blocked
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetDocumentFile 记录身份证件扫描件路径。
func (s *Service) SetDocumentFile(ctx context.Context, id, path string) (*Customer, error) {
	return s.setFile(ctx, id, path, false)
}

// SetLicenseFile 记录驾照扫描件路径。
func (s *Service) SetLicenseFile(ctx context.Context, id, path string) (*Customer, error) {
	return s.setFile(ctx, id, path, true)
}

func (s *Service) setFile(ctx context.Context, id, path string, license bool) (*Customer, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	c, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if license {
		c.LicenseURL = path
	} else {
		c.DocumentURL = path
	}
	if err := s.store.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
