package vehicle

import (
	"context"
	"fmt"
	"strings"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/google/uuid"
)

// Store 车辆持久化接口（*Repo 实现；测试用内存假实现）。
type Store interface {
	Create(ctx context.Context, v *Vehicle) error
	Save(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id string) (*Vehicle, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Vehicle, int64, error)
}

// Service 封装车辆领域用例（不依赖 HTTP），便于复用和测试。
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// CreateVehicleInput 创建车辆的入参。
type CreateVehicleInput struct {
	Model        string
	Year         int
	Brand        string
	Availability string
	Price        float64
}

func (s *Service) Create(ctx context.Context, in CreateVehicleInput) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	model := strings.TrimSpace(in.Model)
	brand := strings.TrimSpace(in.Brand)
	if model == "" || brand == "" || in.Year <= 0 || in.Price <= 0 {
		return nil, apperr.New(apperr.KindValidation, "model, year, brand and price are required")
	}

	av := Availability(strings.TrimSpace(in.Availability))
	if av == "" {
		av = AvailabilityAvailable
	}
	if !av.Valid() {
		return nil, apperr.New(apperr.KindValidation, "invalid availability value")
	}

	v := &Vehicle{
		ID:           uuid.NewString(),
		Model:        model,
		Year:         in.Year,
		Brand:        brand,
		Availability: av,
		Price:        in.Price,
	}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateVehicleInput 更新入参；nil 字段表示不修改。
type UpdateVehicleInput struct {
	Model        *string
	Year         *int
	Brand        *string
	Availability *string
	Price        *float64
}

func (s *Service) Update(ctx context.Context, id string, in UpdateVehicleInput) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	v, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}

	if in.Model != nil && strings.TrimSpace(*in.Model) != "" {
		v.Model = strings.TrimSpace(*in.Model)
	}
	if in.Brand != nil && strings.TrimSpace(*in.Brand) != "" {
		v.Brand = strings.TrimSpace(*in.Brand)
	}
	if in.Year != nil && *in.Year > 0 {
		v.Year = *in.Year
	}
	if in.Price != nil && *in.Price > 0 {
		v.Price = *in.Price
	}
	if in.Availability != nil {
		av := Availability(strings.TrimSpace(*in.Availability))
		if !av.Valid() {
			return nil, apperr.New(apperr.KindValidation, "invalid availability value")
		}
		v.Availability = av
	}

	if err := s.store.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "id required")
	}
	return s.store.FindByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("service not initialized")
	}
	return s.store.Delete(ctx, strings.TrimSpace(id))
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Vehicle, int64, error) {
	if s == nil || s.store == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	if f.Availability != "" && !f.Availability.Valid() {
		return nil, 0, apperr.New(apperr.KindValidation, "invalid availability value")
	}
	return s.store.List(ctx, f)
}

// SetImage 记录上传后的车辆图片路径。
func (s *Service) SetImage(ctx context.Context, id, imageURL string) (*Vehicle, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	v, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	v.ImageURL = imageURL
	if err := s.store.Save(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}
