package customer

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

func (r *Repo) withCtx(ctx context.Context) *gorm.DB {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.WithContext(ctx)
}

func (r *Repo) Create(ctx context.Context, c *Customer) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Create(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Wrap(apperr.KindConflict, "Customer with this email or document already exists", err)
		}
		return err
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, c *Customer) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	if err := db.Save(c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Wrap(apperr.KindConflict, "Customer with this email or document already exists", err)
		}
		return err
	}
	return nil
}

func (r *Repo) FindByID(ctx context.Context, id string) (*Customer, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *Repo) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *Repo) FindByDocument(ctx context.Context, document string) (*Customer, error) {
	return r.findOne(ctx, "document = ?", document)
}

func (r *Repo) findOne(ctx context.Context, query string, arg interface{}) (*Customer, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, fmt.Errorf("repo db is nil")
	}
	var c Customer
	if err := db.Where(query, arg).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "Customer not found")
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	db := r.withCtx(ctx)
	if db == nil {
		return fmt.Errorf("repo db is nil")
	}
	res := db.Where("id = ?", id).Delete(&Customer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "Customer not found")
	}
	return nil
}

func (r *Repo) List(ctx context.Context, offset, limit int) ([]Customer, int64, error) {
	db := r.withCtx(ctx)
	if db == nil {
		return nil, 0, fmt.Errorf("repo db is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	var total int64
	if err := db.Model(&Customer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var customers []Customer
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}
