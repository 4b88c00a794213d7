package company

import (
	"context"
	"testing"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
)

type fakeStore struct {
	profile *Company
}

func (f *fakeStore) First(_ context.Context) (*Company, error) {
	if f.profile == nil {
		return nil, apperr.New(apperr.KindNotFound, "Company profile not configured")
	}
	cp := *f.profile
	return &cp, nil
}

func (f *fakeStore) Save(_ context.Context, c *Company) error {
	cp := *c
	f.profile = &cp
	return nil
}

func TestCompanyLifecycle(t *testing.T) {
	svc := NewService(&fakeStore{})
	ctx := context.Background()

	if _, err := svc.Get(ctx); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found before setup, got %v", err)
	}

	created, err := svc.Create(ctx, Input{Name: "RentalDrive SA", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Error("expected generated id")
	}

	if _, err := svc.Create(ctx, Input{Name: "Other"}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("second create: expected conflict, got %v", err)
	}

	addr := "Av. Principal 123"
	updated, err := svc.Update(ctx, UpdateInput{Address: &addr})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Address != addr {
		t.Errorf("address not updated: %s", updated.Address)
	}
	if updated.Name != "RentalDrive SA" {
		t.Errorf("name must survive partial update: %s", updated.Name)
	}
}

func TestCompanyCreateRequiresName(t *testing.T) {
	svc := NewService(&fakeStore{})
	if _, err := svc.Create(context.Background(), Input{Name: "  "}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
