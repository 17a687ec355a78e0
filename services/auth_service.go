package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"basha-backend/logging"
	"basha-backend/models"
)

const userIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	ErrAuthRequired = errors.New("auth_required")
	ErrOwnerOnly    = errors.New("owner_only")
)

// Session is an authenticated request's session.
type Session struct {
	ID   string
	User *models.User
}

// AuthService issues mock sessions. Passwords are accepted but never checked or kept.
type AuthService struct {
	sessions SessionStore
	tokens   *TokenManager
	mu       sync.Mutex
}

func NewAuthService(sessions SessionStore, tokens *TokenManager) *AuthService {
	return &AuthService{sessions: sessions, tokens: tokens}
}

func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*models.AuthResult, error) {
	return s.start(ctx, "", in.Email, in.Role)
}

func (s *AuthService) Signup(ctx context.Context, in models.SignupInput) (*models.AuthResult, error) {
	return s.start(ctx, in.Name, in.Email, in.Role)
}

func (s *AuthService) start(ctx context.Context, name, email string, role models.Role) (*models.AuthResult, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	if role == "" {
		role = models.RoleStudent
	}

	id, err := gonanoid.Generate(userIDAlphabet, 9)
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}
	user := &models.User{
		ID:        id,
		Name:      name,
		Email:     email,
		Role:      role,
		Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=" + url.QueryEscape(email),
		Favorites: []string{},
	}

	sid := uuid.NewString()
	if err := s.sessions.Save(ctx, sid, user); err != nil {
		return nil, err
	}
	token, exp, err := s.tokens.Generate(sid, user)
	if err != nil {
		return nil, err
	}

	logging.Audit(ctx, logging.ActionSessionLogin, user.ID, "session started")
	return &models.AuthResult{Token: token, ExpiresAt: exp.Unix(), User: user}, nil
}

// Authenticate resolves a bearer token to its live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	user, err := s.sessions.Load(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &Session{ID: claims.SessionID, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, sess *Session) error {
	if sess == nil {
		return ErrAuthRequired
	}
	if err := s.sessions.Delete(ctx, sess.ID); err != nil {
		return err
	}
	logging.Audit(ctx, logging.ActionSessionLogout, sess.User.ID, "session ended")
	return nil
}

// UpdateUser applies fn to the stored session user and writes it back.
// sess.User is replaced with the saved copy.
func (s *AuthService) UpdateUser(ctx context.Context, sess *Session, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.sessions.Load(ctx, sess.ID)
	if err != nil {
		return err
	}
	fn(user)
	if err := s.sessions.Save(ctx, sess.ID, user); err != nil {
		return err
	}
	sess.User = user
	return nil
}
