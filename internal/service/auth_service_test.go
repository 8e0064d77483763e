package service

import (
	"testing"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/config"
	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

type fakeAuthUserStore struct {
	users map[string]*model.User
}

func newFakeAuthUserStore() *fakeAuthUserStore {
	return &fakeAuthUserStore{users: map[string]*model.User{}}
}

func (f *fakeAuthUserStore) Create(user *model.User) error {
	if user.ID == "" {
		user.ID = model.GenerateUUID()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeAuthUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthUserStore) FindByID(id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (f *fakeAuthUserStore) UpdateLastLogin(userID string) error {
	return nil
}

type fakeCompanyDirectory struct {
	companies map[string]*model.Company
}

func (f *fakeCompanyDirectory) FindBySlug(slug string) (*model.Company, error) {
	return f.companies[slug], nil
}

func newAuthService(users *fakeAuthUserStore) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-used-only-in-unit-tests"
	cfg.JWT.ExpireTime = time.Hour

	companies := &fakeCompanyDirectory{companies: map[string]*model.Company{
		"default": quotaCompany("company-default", 0, ""),
	}}
	return NewAuthService(users, companies, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := newAuthService(store)

	user, err := svc.Register(RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != model.Student {
		t.Errorf("role = %s, want student default", user.Role)
	}
	if user.Password == "correct horse" {
		t.Error("password stored in plain text")
	}

	token, logged, err := svc.Login("ana@example.com", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if logged.ID != user.ID {
		t.Errorf("logged in as %s, want %s", logged.ID, user.ID)
	}

	claims, err := util.ParseJWT(token, "test-secret-used-only-in-unit-tests")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.CompanyID != user.CompanyID {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@b.c", Password: "longenough"}},
		{"missing email", RegisterInput{Name: "Ana", Password: "longenough"}},
		{"short password", RegisterInput{Name: "Ana", Email: "a@b.c", Password: "short"}},
		{"invalid role", RegisterInput{Name: "Ana", Email: "a@b.c", Password: "longenough", Role: "wizard"}},
		{"unknown company", RegisterInput{Name: "Ana", Email: "a@b.c", Password: "longenough", CompanySlug: "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(newFakeAuthUserStore())
			if _, err := svc.Register(tt.input); !util.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeAuthUserStore())

	input := RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "longenough"}
	if _, err := svc.Register(input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(input); !util.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := newAuthService(store)

	if _, err := svc.Register(RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "longenough"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login("ana@example.com", "wrong"); !util.IsValidation(err) {
		t.Errorf("wrong password: expected validation error, got %v", err)
	}
	if _, _, err := svc.Login("ghost@example.com", "longenough"); !util.IsValidation(err) {
		t.Errorf("unknown email: expected validation error, got %v", err)
	}

	// Disabled accounts cannot log in even with the right password.
	for _, u := range store.users {
		u.Disabled = true
	}
	if _, _, err := svc.Login("ana@example.com", "longenough"); !util.IsValidation(err) {
		t.Errorf("disabled account: expected validation error, got %v", err)
	}
}
