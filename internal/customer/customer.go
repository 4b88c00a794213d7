package customer

import "time"

// Customer 是 customers 表的 GORM 模型（线下承租人档案，与登录账号无关）。
type Customer struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:64;not null" json:"name"`
	Lastname     string    `gorm:"size:64;not null" json:"lastname"`
	Document     string    `gorm:"uniqueIndex;size:32;not null" json:"document"`
	TypeDocument string    `gorm:"size:32;not null" json:"typeDocument"`
	DocumentURL  string    `gorm:"size:255" json:"documentUrl,omitempty"`
	LicenseURL   string    `gorm:"size:255" json:"licenseUrl,omitempty"`
	Phone        string    `gorm:"size:32" json:"phone"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	IsForeign    bool      `gorm:"not null;default:false" json:"isForeign"`
	IsBlocked    bool      `gorm:"not null;default:false" json:"isBlocked"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
