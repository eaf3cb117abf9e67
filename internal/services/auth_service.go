package services

import (
	"database/sql"
	"strings"

	"rewear/internal/auth"
	"rewear/internal/domain"
	"rewear/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns signup, login and token-to-profile resolution. The profile
// row doubles as the identity record, so first sign-in always has a profile.
type AuthService struct {
	Profiles *repos.ProfileRepo
	Tokens   *auth.JWTService

	AdminEmail    string
	StarterPoints int
}

func NewAuthService(profiles *repos.ProfileRepo, tokens *auth.JWTService, adminEmail string, starterPoints int) *AuthService {
	return &AuthService{
		Profiles:      profiles,
		Tokens:        tokens,
		AdminEmail:    adminEmail,
		StarterPoints: starterPoints,
	}
}

func (s *AuthService) Register(name, email, password string) (*domain.Profile, string, error) {
	if _, err := s.Profiles.ByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if err != sql.ErrNoRows {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, "", err
	}

	p := &domain.Profile{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  email,
		Hash:   string(hash),
		Points: s.StarterPoints,
		Role:   domain.RoleUser,
	}
	// The configured admin address signs up straight into the admin role.
	if strings.EqualFold(email, s.AdminEmail) {
		p.Role = domain.RoleAdmin
		p.Points = 9999
	}
	if err := s.Profiles.Create(p); err != nil {
		return nil, "", err
	}

	tok, err := s.Tokens.Generate(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p, tok, nil
}

func (s *AuthService) Login(email, password string) (*domain.Profile, string, error) {
	p, err := s.Profiles.ByEmail(email)
	if err != nil {
		return nil, "", ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(password)) != nil {
		return nil, "", ErrBadCreds
	}
	tok, err := s.Tokens.Generate(p.ID)
	if err != nil {
		return nil, "", err
	}
	return p, tok, nil
}

// CurrentProfile resolves a bearer token to the profile it belongs to.
func (s *AuthService) CurrentProfile(token string) (*domain.Profile, error) {
	userID, err := s.Tokens.ExtractUserID(token)
	if err != nil {
		return nil, err
	}
	return s.Profiles.ByID(userID)
}

func (s *AuthService) UpdateProfile(userID, name, location, bio, avatarURL string) (*domain.Profile, error) {
	if err := s.Profiles.UpdateDetails(userID, name, location, bio, avatarURL); err != nil {
		return nil, err
	}
	return s.Profiles.ByID(userID)
}
