package booking

import "time"

// Status 预订状态。取消即删行，不存在 cancelled 状态。
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Valid 是否为合法状态。
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	}
	return false
}

// Booking 是 bookings 表的 GORM 模型。
type Booking struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    string    `gorm:"size:36;index;not null" json:"userId"`
	VehicleID string    `gorm:"size:36;index;not null" json:"vehicleId"`
	StartDate time.Time `gorm:"not null" json:"startDate"`
	EndDate   time.Time `gorm:"not null" json:"endDate"`
	Price     float64   `gorm:"not null" json:"price"`
	Status    Status    `gorm:"type:varchar(16);index;not null;default:'pending'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
