package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"orgboard/internal/model"
	"orgboard/internal/util"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService backs the login and bootstrap flows. It sits outside the
// envelope contract: the HTTP layer maps its errors directly.
type AuthService struct {
	users     UserStore
	orgs      OrganizationStore
	jwtSecret string
}

func NewAuthService(users UserStore, orgs OrganizationStore, jwtSecret string) *AuthService {
	return &AuthService{
		users:     users,
		orgs:      orgs,
		jwtSecret: jwtSecret,
	}
}

// Login checks credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !util.CheckPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return util.GenerateJWT(u.ID, s.jwtSecret)
}

// CreateAccountAndOrg bootstraps a fresh organization together with its
// first Admin user.
func (s *AuthService) CreateAccountAndOrg(ctx context.Context, email, password, orgName string) (*model.User, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New("Email already exists")
	}

	org := &model.Organization{Name: orgName}
	if err := s.orgs.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Email:          email,
		PasswordHash:   hash,
		RoleID:         model.RoleAdmin,
		OrganizationID: org.ID,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
