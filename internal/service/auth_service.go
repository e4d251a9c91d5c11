package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long an issued bearer token stays valid.
const tokenTTL = 7 * 24 * time.Hour

// AuthService handles admin registration, login, and bearer token verification.
type AuthService struct {
	adminRepo *repository.AdminRepository
	secret    []byte
}

// NewAuthService creates a new AuthService. The secret signs and verifies
// bearer tokens; it must be identical across all server instances.
func NewAuthService(adminRepo *repository.AdminRepository, secret []byte) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		secret:    secret,
	}
}

// Register creates a new admin account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Admin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := ValidateCredentials(email, password); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	admin, err := s.adminRepo.Create(ctx, email, string(hash))
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return nil, "", err
	}

	slog.Info("admin registered", "admin_id", admin.ID)

	return admin, token, nil
}

// Login exchanges credentials for a bearer token. Unknown emails and wrong
// passwords both map to ErrInvalidCredentials so the response does not leak
// which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Admin, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(admin)
	if err != nil {
		return nil, "", err
	}

	slog.Info("admin logged in", "admin_id", admin.ID)

	return admin, token, nil
}

// VerifyToken validates a bearer token and resolves the admin it belongs to.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.Admin, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	admin, err := s.adminRepo.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	return admin, nil
}

func (s *AuthService) issueToken(admin *domain.Admin) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   admin.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
