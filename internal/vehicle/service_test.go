package vehicle

import (
	"context"
	"testing"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
)

type fakeStore struct {
	vehicles map[string]*Vehicle
}

func newFakeStore() *fakeStore {
	return &fakeStore{vehicles: make(map[string]*Vehicle)}
}

func (f *fakeStore) Create(_ context.Context, v *Vehicle) error {
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeStore) Save(_ context.Context, v *Vehicle) error {
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "Vehicle not found")
	}
	cp := *v
	return &cp, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.vehicles[id]; !ok {
		return apperr.New(apperr.KindNotFound, "Vehicle not found")
	}
	delete(f.vehicles, id)
	return nil
}

func (f *fakeStore) List(_ context.Context, filter ListFilter) ([]Vehicle, int64, error) {
	var out []Vehicle
	for _, v := range f.vehicles {
		if filter.Brand != "" && v.Brand != filter.Brand {
			continue
		}
		if filter.Availability != "" && v.Availability != filter.Availability {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func TestCreateVehicleDefaultsToAvailable(t *testing.T) {
	svc := NewService(newFakeStore())

	v, err := svc.Create(context.Background(), CreateVehicleInput{
		Model: "Corolla",
		Year:  2022,
		Brand: "Toyota",
		Price: 80,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if v.Availability != AvailabilityAvailable {
		t.Errorf("expected default availability available, got %s", v.Availability)
	}
	if v.ID == "" {
		t.Error("expected generated id")
	}
}

func TestCreateVehicleRejectsBadAvailability(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.Create(context.Background(), CreateVehicleInput{
		Model:        "Corolla",
		Year:         2022,
		Brand:        "Toyota",
		Price:        80,
		Availability: "parked",
	})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreateVehicleRequiredFields(t *testing.T) {
	svc := NewService(newFakeStore())

	if _, err := svc.Create(context.Background(), CreateVehicleInput{Model: "Corolla"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateVehiclePartial(t *testing.T) {
	svc := NewService(newFakeStore())

	v, err := svc.Create(context.Background(), CreateVehicleInput{
		Model: "Corolla", Year: 2022, Brand: "Toyota", Price: 80,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	price := 95.0
	av := string(AvailabilityMaintenance)
	updated, err := svc.Update(context.Background(), v.ID, UpdateVehicleInput{Price: &price, Availability: &av})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Price != 95 {
		t.Errorf("expected price 95, got %v", updated.Price)
	}
	if updated.Availability != AvailabilityMaintenance {
		t.Errorf("expected maintenance, got %s", updated.Availability)
	}
	if updated.Model != "Corolla" {
		t.Errorf("model must survive partial update, got %s", updated.Model)
	}

	bad := "junk"
	if _, err := svc.Update(context.Background(), v.ID, UpdateVehicleInput{Availability: &bad}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error for bad availability, got %v", err)
	}
}

func TestListVehiclesInvalidAvailabilityFilter(t *testing.T) {
	svc := NewService(newFakeStore())
	if _, _, err := svc.List(context.Background(), ListFilter{Availability: "parked"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSetVehicleImage(t *testing.T) {
	svc := NewService(newFakeStore())

	v, err := svc.Create(context.Background(), CreateVehicleInput{
		Model: "Corolla", Year: 2022, Brand: "Toyota", Price: 80,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.SetImage(context.Background(), v.ID, "uploads/img.png")
	if err != nil {
		t.Fatalf("SetImage: %v", err)
	}
	if updated.ImageURL != "uploads/img.png" {
		t.Errorf("image url not set: %s", updated.ImageURL)
	}
}
