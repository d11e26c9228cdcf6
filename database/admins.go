package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// AdminStore keeps the admin account and its session token.
type AdminStore struct {
	db *gorm.DB
}

func NewAdminStore(db *gorm.DB) *AdminStore {
	return &AdminStore{db: db}
}

// EnsureAdmin creates the admin account, or refreshes its password hash
// when the configured password changed.
func (s *AdminStore) EnsureAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	password = strings.TrimSpace(password)
	if email == "" || password == "" {
		return errors.New("admin email and password are required")
	}

	var admin AdminUser
	result := s.db.WithContext(ctx).Where(&AdminUser{Email: email}).First(&admin)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up admin: %w", result.Error)
	}

	if result.Error == nil && bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(password)) == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin.Email = email
	admin.PasswordHash = hash
	if err := s.db.WithContext(ctx).Save(&admin).Error; err != nil {
		return fmt.Errorf("save admin: %w", err)
	}
	return nil
}

// Authenticate checks the credentials and stores token as the admin's
// current session.
func (s *AdminStore) Authenticate(ctx context.Context, email, password, token string) (*AdminUser, error) {
	var admin AdminUser
	result := s.db.WithContext(ctx).Where(&AdminUser{Email: normalizeEmail(email)}).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, result.Error
	}

	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte(strings.TrimSpace(password))); err != nil {
		return nil, ErrInvalidCredentials
	}

	admin.SessionToken = token
	if err := s.db.WithContext(ctx).Save(&admin).Error; err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &admin, nil
}

// BySession returns the admin owning the session token.
func (s *AdminStore) BySession(ctx context.Context, token string) (*AdminUser, error) {
	if token == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var admin AdminUser
	result := s.db.WithContext(ctx).Where(&AdminUser{SessionToken: token}).First(&admin)
	if result.Error != nil {
		return nil, result.Error
	}
	return &admin, nil
}

func (s *AdminStore) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.db.WithContext(ctx).Model(&AdminUser{}).
		Where("session_token = ?", token).
		Update("session_token", "").Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
