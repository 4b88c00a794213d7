package user

import (
	"strings"
	"time"
)

// Role 系统账号角色（单一角色制）。
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleSecretary Role = "secretary"
	RoleClient    Role = "client"
)

// Valid 是否为合法角色。
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSecretary, RoleClient:
		return true
	}
	return false
}

// NormalizeRole 清洗角色输入；空值回落到 client。
func NormalizeRole(s string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if r == "" {
		return RoleClient
	}
	return r
}

// User 是 users 表的 GORM 模型。
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	Password  string    `gorm:"size:128;not null" json:"-"` // bcrypt 哈希
	Role      Role      `gorm:"type:varchar(16);not null;default:'client'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
