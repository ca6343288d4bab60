package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/viewtube/backend/internal/database"
	"github.com/viewtube/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUsernameExists     = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 10 * 24 * time.Hour

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Service handles all authentication operations
type Service struct {
	jwtSecret []byte
}

// NewService creates a new authentication service
func NewService(jwtSecret []byte) *Service {
	return &Service{jwtSecret: jwtSecret}
}

// Claims are the JWT claims carried by both token kinds
type Claims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
	ExpiresAt    time.Time   `json:"expires_at"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,min=1,max=80"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user with email/password
func (s *Service) Register(req RegisterRequest) (*AuthResponse, error) {
	var existing models.User
	err := database.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	err = database.DB.Where("LOWER(username) = LOWER(?)", req.Username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:        strings.ToLower(req.Email),
		Username:     req.Username,
		FullName:     req.FullName,
		PasswordHash: string(hashedPassword),
	}

	if err := database.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(&user)
}

// Login authenticates a user with email/password
func (s *Service) Login(req LoginRequest) (*AuthResponse, error) {
	var user models.User
	err := database.DB.Where("LOWER(email) = LOWER(?)", req.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(&user)
}

// Refresh exchanges a valid refresh token for a new token pair. The token
// must match the one stored on the user row, so logout invalidates it.
func (s *Service) Refresh(refreshToken string) (*AuthResponse, error) {
	claims, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", claims.Subject).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, ErrInvalidToken
	}

	return s.issueTokens(&user)
}

// Logout clears the stored refresh token
func (s *Service) Logout(userID string) error {
	return database.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("refresh_token", nil).Error
}

// ChangePassword verifies the old password and stores the new hash
func (s *Service) ChangePassword(user *models.User, oldPassword, newPassword string) error {
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return database.DB.Model(user).Update("password_hash", string(hashed)).Error
}

// VerifyAccessToken returns the user id carried by a valid access token
func (s *Service) VerifyAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token, tokenTypeAccess)
	if err != nil {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func (s *Service) issueTokens(user *models.User) (*AuthResponse, error) {
	now := time.Now()
	expiresAt := now.Add(accessTokenTTL)

	access, err := s.signToken(user.ID, tokenTypeAccess, now, expiresAt)
	if err != nil {
		return nil, err
	}

	refresh, err := s.signToken(user.ID, tokenTypeRefresh, now, now.Add(refreshTokenTTL))
	if err != nil {
		return nil, err
	}

	if err := database.DB.Model(user).Update("refresh_token", refresh).Error; err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *user,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) signToken(userID, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := Claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *Service) parseToken(tokenString, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.TokenType != wantType || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
