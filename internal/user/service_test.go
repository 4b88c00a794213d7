package user

import (
	"context"
	"testing"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
)

type fakeStore struct {
	users map[string]*User
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*User)}
}

func (f *fakeStore) Create(_ context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return apperr.New(apperr.KindConflict, "Email already registered")
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) Save(_ context.Context, u *User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeStore) FindByID(_ context.Context, id string) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "User not found")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.KindNotFound, "User not found")
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return apperr.New(apperr.KindNotFound, "User not found")
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) List(_ context.Context, offset, limit int) ([]User, int64, error) {
	var out []User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(f.users)), nil
}

type fakeBookingCounter struct {
	count int64
}

func (f *fakeBookingCounter) CountByUser(_ context.Context, _ string) (int64, error) {
	return f.count, nil
}

func testAuthCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:   "test-secret",
		Issuer:      "rentaldrive",
		Audience:    "rentaldrive",
		TokenTTLMin: 60,
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeBookingCounter{}, testAuthCfg())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "Ana@Example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Errorf("email not normalized: %s", u.Email)
	}
	if u.Role != RoleClient {
		t.Errorf("expected default role client, got %s", u.Role)
	}
	if u.Password == "secret123" {
		t.Error("password stored in plain text")
	}

	res, err := svc.Login(ctx, "ana@example.com", "secret123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a token")
	}
	if res.User.ID != u.ID {
		t.Errorf("login returned wrong user: %s", res.User.ID)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeBookingCounter{}, testAuthCfg())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// 密码错误与用户不存在都应返回同一个未授权错误
	if _, err := svc.Login(ctx, "ana@example.com", "wrong"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("wrong password: expected unauthorized, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@example.com", "secret123"); !apperr.Is(err, apperr.KindUnauthorized) {
		t.Errorf("unknown user: expected unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeBookingCounter{}, testAuthCfg())
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, RegisterInput{Name: "Ana2", Email: "ANA@example.com", Password: "secret456"})
	if !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestUpdateUserRole(t *testing.T) {
	svc := NewService(newFakeStore(), &fakeBookingCounter{}, testAuthCfg())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	role := "secretary"
	updated, err := svc.Update(ctx, u.ID, UpdateInput{Role: &role})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != RoleSecretary {
		t.Errorf("expected secretary, got %s", updated.Role)
	}

	bad := "superuser"
	if _, err := svc.Update(ctx, u.ID, UpdateInput{Role: &bad}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error for bad role, got %v", err)
	}
}

func TestDeleteUserWithBookings(t *testing.T) {
	counter := &fakeBookingCounter{count: 2}
	svc := NewService(newFakeStore(), counter, testAuthCfg())
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.Delete(ctx, u.ID); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("expected validation error while bookings exist, got %v", err)
	}

	counter.count = 0
	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, u.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}
