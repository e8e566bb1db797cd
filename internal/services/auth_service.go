package services

import (
	"errors"

	"coursiva/internal/domain"
	"coursiva/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrBadCreds   = errors.New("email ou mot de passe invalide")
	ErrEmailTaken = errors.New("un compte existe deja avec cet email")
)

type AuthService struct {
	Users *repos.UserRepo
}

// Register creates an account. Duplicate emails are rejected by the store's
// unique index; the race window of check-then-insert does not exist here.
func (s *AuthService) Register(email, name, password, phone, address string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	u := domain.User{
		ID:      uuid.NewString(),
		Email:   email,
		Name:    name,
		Hash:    string(hash),
		Phone:   phone,
		Address: address,
	}
	if err := s.Users.Create(u); err != nil {
		if repos.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}
