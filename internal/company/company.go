package company

import "time"

// Company 是公司资料的单行表；报表与合同页眉取自这里。
type Company struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	Address     string    `gorm:"size:255" json:"address"`
	Phone       string    `gorm:"size:32" json:"phone"`
	Email       string    `gorm:"size:128" json:"email"`
	Website     string    `gorm:"size:128" json:"website,omitempty"`
	TaxID       string    `gorm:"size:64" json:"taxId"`
	LogoURL     string    `gorm:"size:255" json:"logoUrl,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
