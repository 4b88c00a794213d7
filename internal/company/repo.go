package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// First 读取唯一的公司资料行；未配置时返回 NotFound。
func (r *Repo) First(ctx context.Context) (*Company, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var c Company
	if err := r.db.WithContext(ctx).Order("created_at asc").First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Company profile not configured")
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Save(ctx context.Context, c *Company) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repo db is nil")
	}
	return r.db.WithContext(ctx).Save(c).Error
}
