package customer

import (
	"context"
	"testing"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
)

type fakeStore struct {
	customers map[string]*Customer
}

func newFakeStore() *fakeStore {
	return &fakeStore{customers: make(map[string]*Customer)}
}

func (f *fakeStore) Create(_ context.Context, c *Customer) error {
	for _, existing := range f.customers {
		if existing.Email == c.Email || existing.Document == c.Document {
			return apperr.New(apperr.KindConflict, "Customer with this email or document already exists")
		}
	}
	cp := *c
	f.customers[c.ID] = &cp
	return nil
}

func (f *fakeStore) Save(_ context.Context, c *Customer) error {
	cp := *c
	f.customers[c.ID] = &cp
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "Customer not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Customer not found")
}

func (f *fakeStore) FindByDocument(_ context.Context, document string) (*Customer, error) {
	for _, c := range f.customers {
		if c.Document == document {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "Customer not found")
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return apperr.New(apperr.KindNotFound, "Customer not found")
	}
	delete(f.customers, id)
	return nil
}

func (f *fakeStore) List(_ context.Context, offset, limit int) ([]Customer, int64, error) {
	var out []Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func sampleInput() CreateInput {
	return CreateInput{
		Name:         "Juan",
		Lastname:     "Perez",
		Document:     "12345678",
		TypeDocument: "dni",
		Phone:        "555-0101",
		Email:        "Juan@Example.com",
	}
}

func TestCreateCustomer(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	c, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID == "" {
		t.Error("expected generated id")
	}
	if c.Email != "juan@example.com" {
		t.Errorf("email not normalized: %s", c.Email)
	}
	if c.IsBlocked {
		t.Error("new customer must not be blocked")
	}
}

func TestCreateCustomerDuplicateDocument(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	in := sampleInput()
	in.Email = "other@example.com"
	if _, err := svc.Create(ctx, in); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestFindByEmailAndDocument(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	byEmail, err := svc.GetByEmail(ctx, "juan@example.com")
	if err != nil || byEmail.ID != created.ID {
		t.Errorf("GetByEmail: got %v, %v", byEmail, err)
	}
	byDoc, err := svc.GetByDocument(ctx, "12345678")
	if err != nil || byDoc.ID != created.ID {
		t.Errorf("GetByDocument: got %v, %v", byDoc, err)
	}
	if _, err := svc.GetByDocument(ctx, "99999999"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestBlockAndUnblock(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	c, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	blocked, err := svc.SetBlocked(ctx, c.ID, true)
	if err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if !blocked.IsBlocked {
		t.Error("expected customer to be blocked")
	}

	unblocked, err := svc.SetBlocked(ctx, c.ID, false)
	if err != nil {
		t.Fatalf("SetBlocked: %v", err)
	}
	if unblocked.IsBlocked {
		t.Error("expected customer to be unblocked")
	}
}

func TestSetCustomerFiles(t *testing.T) {
	svc := NewService(newFakeStore())
	ctx := context.Background()

	c, err := svc.Create(ctx, sampleInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	withDoc, err := svc.SetDocumentFile(ctx, c.ID, "uploads/doc.pdf")
	if err != nil {
		t.Fatalf("SetDocumentFile: %v", err)
	}
	if withDoc.DocumentURL != "uploads/doc.pdf" {
		t.Errorf("document url not set: %s", withDoc.DocumentURL)
	}

	withLic, err := svc.SetLicenseFile(ctx, c.ID, "uploads/lic.pdf")
	if err != nil {
		t.Fatalf("SetLicenseFile: %v", err)
	}
	if withLic.LicenseURL != "uploads/lic.pdf" {
		t.Errorf("license url not set: %s", withLic.LicenseURL)
	}
	if withLic.DocumentURL != "uploads/doc.pdf" {
		t.Error("document url must survive license upload")
	}
}
