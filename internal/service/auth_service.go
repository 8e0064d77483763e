package service

import (
	"github.com/SinesysTech/aluminify-sub018/internal/config"
	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthUserStore is the account persistence the auth flow needs. Find
// methods return (nil, nil) when no row matches.
type AuthUserStore interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id string) (*model.User, error)
	UpdateLastLogin(userID string) error
}

// CompanyDirectory resolves tenants by their public slug.
type CompanyDirectory interface {
	FindBySlug(slug string) (*model.Company, error)
}

type AuthService struct {
	users     AuthUserStore
	companies CompanyDirectory
	cfg       *config.Config
}

func NewAuthService(users AuthUserStore, companies CompanyDirectory, cfg *config.Config) *AuthService {
	return &AuthService{
		users:     users,
		companies: companies,
		cfg:       cfg,
	}
}

type RegisterInput struct {
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Password    string         `json:"password"`
	Role        model.UserRole `json:"role"`
	CompanySlug string         `json:"companySlug"`
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	if input.Name == "" || input.Email == "" {
		return nil, util.ValidationError("name and email are required")
	}
	if len(input.Password) < 8 {
		return nil, util.ValidationError("password must be at least 8 characters")
	}

	role := input.Role
	if role == "" {
		role = model.Student
	}
	if !model.ValidRole(role) {
		return nil, util.ValidationError("invalid role")
	}

	slug := input.CompanySlug
	if slug == "" {
		slug = "default"
	}
	company, err := s.companyBySlug(slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ConflictError("email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:      input.Name,
		Email:     input.Email,
		Password:  string(hashedPassword),
		Role:      role,
		CompanyID: company.ID,
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.Disabled {
		return "", nil, util.ValidationError("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ValidationError("invalid credentials")
	}

	token, err := util.GenerateJWT(user, s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	s.users.UpdateLastLogin(user.ID)
	return token, user, nil
}

func (s *AuthService) Profile(userID string) (*model.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.NotFoundError("user not found")
	}
	return user, nil
}

func (s *AuthService) companyBySlug(slug string) (*model.Company, error) {
	company, err := s.companies.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.Active {
		return nil, util.ValidationError("unknown company")
	}
	return company, nil
}
