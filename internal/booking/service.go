package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/logger"
	"github.com/RentalDrive/RentalDrive/internal/vehicle"
	"github.com/google/uuid"
)

// Store 预订持久化接口（*Repo 实现）。
type Store interface {
	Create(ctx context.Context, b *Booking) error
	Save(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ListFilter) ([]Booking, int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// VehicleStore 预订流程需要的车辆读写子集。
type VehicleStore interface {
	FindByID(ctx context.Context, id string) (*vehicle.Vehicle, error)
	Save(ctx context.Context, v *vehicle.Vehicle) error
}

// Service 承载预订与车辆可用性之间的状态契约。
// 车辆可用性是次级状态：主记录写入成功后,车辆更新失败只记日志不回滚。
type Service struct {
	store    Store
	vehicles VehicleStore
	log      logger.Logger
}

func NewService(store Store, vehicles VehicleStore, log logger.Logger) *Service {
	return &Service{store: store, vehicles: vehicles, log: log}
}

// CreateInput 下单入参。
type CreateInput struct {
	UserID    string
	VehicleID string
	StartDate time.Time
	EndDate   time.Time
	Price     float64
}

// Create 创建预订。车辆必须处于 available 或 maintenance；
// available 车辆下单后转为 unavailable。
func (s *Service) Create(ctx context.Context, in CreateInput) (*Booking, error) {
	if s == nil || s.store == nil || s.vehicles == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	userID := strings.TrimSpace(in.UserID)
	vehicleID := strings.TrimSpace(in.VehicleID)
	if userID == "" || vehicleID == "" || in.StartDate.IsZero() || in.EndDate.IsZero() || in.Price <= 0 {
		return nil, apperr.New(apperr.KindValidation, "userId, vehicleId, startDate, endDate and price are required")
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, apperr.New(apperr.KindValidation, "endDate must be after startDate")
	}

	v, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if !CanBook(v.Availability) {
		return nil, apperr.New(apperr.KindValidation, "Vehicle is not available for booking")
	}

	b := &Booking{
		ID:        uuid.NewString(),
		UserID:    userID,
		VehicleID: vehicleID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Price:     in.Price,
		Status:    StatusPending,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}

	if next := AvailabilityAfterCreate(v.Availability); next != v.Availability {
		v.Availability = next
		if err := s.vehicles.Save(ctx, v); err != nil && s.log != nil {
			s.log.Errorf("booking %s created but vehicle %s availability update failed: %v", b.ID, v.ID, err)
		}
	}
	return b, nil
}

// ConvertToRental 将 pending 预订转为已完成租约，按日均价规则计附加费。
func (s *Service) ConvertToRental(ctx context.Context, id string) (*Booking, error) {
	if s == nil || s.store == nil || s.vehicles == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	b, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	v, err := s.vehicles.FindByID(ctx, b.VehicleID)
	if err != nil {
		return nil, err
	}
	if v.Availability == vehicle.AvailabilityMaintenance {
		return nil, apperr.New(apperr.KindValidation, "Vehicle is under maintenance")
	}
	if b.Status != StatusPending {
		return nil, apperr.New(apperr.KindValidation, "Only pending bookings can be converted")
	}

	days := RentalDays(b.StartDate, b.EndDate)
	b.Price = ApplySurcharge(b.Price, days)
	b.Status = StatusCompleted
	if err := s.store.Save(ctx, b); err != nil {
		return nil, err
	}

	v.Availability = vehicle.AvailabilityCompleted
	if err := s.vehicles.Save(ctx, v); err != nil && s.log != nil {
		s.log.Errorf("booking %s completed but vehicle %s availability update failed: %v", b.ID, v.ID, err)
	}
	return b, nil
}

// Cancel 取消 pending 预订：删除记录并把车辆恢复为 available。
func (s *Service) Cancel(ctx context.Context, id string) error {
	if s == nil || s.store == nil || s.vehicles == nil {
		return fmt.Errorf("service not initialized")
	}
	b, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if b.Status != StatusPending {
		return apperr.New(apperr.KindValidation, "Only pending bookings can be cancelled")
	}
	if err := s.store.Delete(ctx, b.ID); err != nil {
		return err
	}

	v, err := s.vehicles.FindByID(ctx, b.VehicleID)
	if err != nil {
		if s.log != nil {
			s.log.Errorf("booking %s cancelled but vehicle %s not reloaded: %v", b.ID, b.VehicleID, err)
		}
		return nil
	}
	v.Availability = vehicle.AvailabilityAvailable
	if err := s.vehicles.Save(ctx, v); err != nil && s.log != nil {
		s.log.Errorf("booking %s cancelled but vehicle %s availability reset failed: %v", b.ID, v.ID, err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.New(apperr.KindValidation, "id required")
	}
	return s.store.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Booking, int64, error) {
	if s == nil || s.store == nil {
		return nil, 0, fmt.Errorf("service not initialized")
	}
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, apperr.New(apperr.KindValidation, "invalid status value")
	}
	return s.store.List(ctx, f)
}

// UpdateInput 常规字段更新；状态与价格的业务变更走 ConvertToRental/Cancel。
type UpdateInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Price     *float64
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*Booking, error) {
	if s == nil || s.store == nil {
		return nil, fmt.Errorf("service not initialized")
	}
	b, err := s.store.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if b.Status != StatusPending {
		return nil, apperr.New(apperr.KindValidation, "Only pending bookings can be updated")
	}

	if in.StartDate != nil && !in.StartDate.IsZero() {
		b.StartDate = *in.StartDate
	}
	if in.EndDate != nil && !in.EndDate.IsZero() {
		b.EndDate = *in.EndDate
	}
	if !b.EndDate.After(b.StartDate) {
		return nil, apperr.New(apperr.KindValidation, "endDate must be after startDate")
	}
	if in.Price != nil && *in.Price > 0 {
		b.Price = *in.Price
	}

	if err := s.store.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete 行政删除，不触发任何车辆状态变化；业务取消请用 Cancel。
func (s *Service) Delete(ctx context.Context, id string) error {
	if s == nil || s.store == nil {
		return fmt.Errorf("service not initialized")
	}
	return s.store.Delete(ctx, strings.TrimSpace(id))
}

// CountByUser 供用户删除前的引用检查使用。
func (s *Service) CountByUser(ctx context.Context, userID string) (int64, error) {
	if s == nil || s.store == nil {
		return 0, fmt.Errorf("service not initialized")
	}
	return s.store.CountByUser(ctx, userID)
}
