package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tripsee/internal/domain"
	"tripsee/internal/model"
)

type memStore struct {
	users  []model.User
	getErr error
}

func (m *memStore) UserByEmail(_ context.Context, email string) (model.User, error) {
	if m.getErr != nil {
		return model.User{}, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, domain.NotFoundError{Resource: "user", ID: email}
}

func (m *memStore) InsertUser(_ context.Context, u model.User) (int64, error) {
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, u)
	return u.ID, nil
}

func validRegistration() Registration {
	return Registration{
		Name:            "Ada Traveller",
		Email:           "Ada@Example.com ",
		Password:        "Passw0rdX",
		ConfirmPassword: "Passw0rdX",
	}
}

func newTestService(store UserStore, latency time.Duration) *Service {
	s := NewService(store, latency)
	s.hashCost = bcrypt.MinCost
	return s
}

func TestValidate_PasswordClasses(t *testing.T) {
	reg := validRegistration()
	reg.Password = "abcdefgh"
	reg.ConfirmPassword = "abcdefgh"

	err := reg.Validate()
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if domain.FieldOf(err) != "password" {
		t.Fatalf("field = %q, want password", domain.FieldOf(err))
	}
	msg := err.Error()
	if !strings.Contains(msg, "uppercase") || !strings.Contains(msg, "digit") {
		t.Fatalf("message should cite uppercase and digit: %q", msg)
	}
}

func TestValidate_Cases(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*Registration)
		field string
	}{
		{"missing name", func(r *Registration) { r.Name = "  " }, "name"},
		{"missing email", func(r *Registration) { r.Email = "" }, "email"},
		{"bad email", func(r *Registration) { r.Email = "ada.example.com" }, "email"},
		{"short password", func(r *Registration) { r.Password, r.ConfirmPassword = "Ab1", "Ab1" }, "password"},
		{"no digit", func(r *Registration) { r.Password, r.ConfirmPassword = "Abcdefgh", "Abcdefgh" }, "password"},
		{"mismatch", func(r *Registration) { r.ConfirmPassword = "Passw0rdY" }, "confirmPassword"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg := validRegistration()
			tc.edit(&reg)
			err := reg.Validate()
			if domain.FieldOf(err) != tc.field {
				t.Fatalf("got %v, want ValidationError on %s", err, tc.field)
			}
		})
	}
	if err := validRegistration().Validate(); err != nil {
		t.Fatalf("valid registration rejected: %v", err)
	}
}

func TestCheckPasswordStrength_NoDigitOnly(t *testing.T) {
	err := CheckPasswordStrength("Abcdefgh")
	if err == nil || strings.Contains(err.Error(), "uppercase") || !strings.Contains(err.Error(), "digit") {
		t.Fatalf("unexpected result %v", err)
	}
}

func TestRegister_StoresHashedUser(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, 0)

	u, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID != 1 || u.Email != "ada@example.com" || u.Name != "Ada Traveller" {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.PasswordHash == "Passw0rdX" || ComparePassword(u.PasswordHash, "Passw0rdX") != nil {
		t.Fatalf("password not hashed with bcrypt")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	store := &memStore{users: []model.User{{ID: 1, Email: "ada@example.com"}}}
	svc := newTestService(store, 0)

	_, err := svc.Register(context.Background(), validRegistration())
	if !domain.IsService(err) {
		t.Fatalf("expected ServiceError, got %v", err)
	}
	if len(store.users) != 1 {
		t.Fatalf("duplicate stored")
	}
}

func TestRegister_StoreFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := newTestService(&memStore{getErr: boom}, 0)
	_, err := svc.Register(context.Background(), validRegistration())
	if !domain.IsService(err) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped ServiceError, got %v", err)
	}
}

func TestRegister_Cancelled(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Register(ctx, validRegistration())
	if !domain.IsService(err) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled ServiceError, got %v", err)
	}
	if len(store.users) != 0 {
		t.Fatalf("cancelled registration stored a user")
	}
}

func TestRegister_ValidationSkipsLatency(t *testing.T) {
	svc := newTestService(&memStore{}, time.Hour)
	reg := validRegistration()
	reg.Email = "nope"
	_, err := svc.Register(context.Background(), reg)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
