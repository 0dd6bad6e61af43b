package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"retail-analytics/internal/apperror"
	"retail-analytics/internal/config"
	"retail-analytics/internal/model"
	"retail-analytics/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when the username or password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a JWT is malformed, expired, or signed
	// with the wrong key.
	ErrInvalidToken = errors.New("invalid token")
)

// Service authenticates users and issues JWTs.
type Service struct {
	users repository.UserRepository
	cfg   config.JWTConfig
}

// NewService creates a new authentication service.
func NewService(users repository.UserRepository, cfg config.JWTConfig) *Service {
	return &Service{users: users, cfg: cfg}
}

// Login verifies the credentials and returns a signed token on success.
func (s *Service) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperror.IsKind(err, apperror.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	sanitized := *user
	sanitized.PasswordHash = ""

	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      sanitized,
	}, nil
}

// ValidateToken parses and verifies a JWT and returns the user it describes.
func (s *Service) ValidateToken(tokenString string) (*model.User, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return &model.User{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}

func (s *Service) generateToken(user *model.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)

	claims := &model.JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
