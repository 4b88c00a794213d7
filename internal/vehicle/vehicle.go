package vehicle

import "time"

// Availability 车辆可租状态枚举（持久化为字符串）。
type Availability string

const (
	AvailabilityAvailable   Availability = "available"   // 可预订
	AvailabilityUnavailable Availability = "unavailable" // 已被预订占用
	AvailabilityMaintenance Availability = "maintenance" // 维保中（可预订，转租赁被拒）
	AvailabilityCompleted   Availability = "completed"   // 已随租赁完成
)

// Valid 是否为合法的状态取值。
func (a Availability) Valid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityUnavailable, AvailabilityMaintenance, AvailabilityCompleted:
		return true
	}
	return false
}

// Vehicle 是 vehicles 表的 GORM 模型。
type Vehicle struct {
	ID           string       `gorm:"primaryKey;size:36" json:"id"`
	Model        string       `gorm:"size:64;not null" json:"model"`
	Year         int          `gorm:"not null" json:"year"`
	Brand        string       `gorm:"size:64;not null" json:"brand"`
	Availability Availability `gorm:"type:varchar(16);index;not null" json:"availability"`
	Price        float64      `gorm:"not null" json:"price"`
	ImageURL     string       `gorm:"size:255" json:"imageUrl,omitempty"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}
