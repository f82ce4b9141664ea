package services

import (
	"errors"
	"time"

	"campus-todo/campustodo/database"
	"campus-todo/campustodo/models"
	"campus-todo/campustodo/utils/token"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type AuthServiceInterface interface {
	Login(db *database.Database, username, password string) (string, error)
	Logout(db *database.Database, claims *JWTClaims) error
	ValidateToken(db *database.Database, tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(jwtSecret string, jwtExpirationHours int) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
	}
}

// Login authenticates by exact username match. A missing user and a wrong
// password both yield ErrInvalidCredentials so callers cannot enumerate
// accounts.
func (s *AuthService) Login(db *database.Database, username, password string) (string, error) {
	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := token.GenerateToken(user.ID, user.Username, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Logout revokes the presented token's jti. Revoking an already revoked
// token succeeds, so logout is idempotent.
func (s *AuthService) Logout(db *database.Database, claims *JWTClaims) error {
	expiresAt := time.Now().UTC().Add(s.jwtExpiration)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	var revoked models.RevokedToken
	return db.DB.
		Where(models.RevokedToken{TokenID: claims.ID}).
		Attrs(models.RevokedToken{
			UserID:    claims.UserID,
			ExpiresAt: expiresAt,
			RevokedAt: time.Now().UTC(),
		}).
		FirstOrCreate(&revoked).Error
}

// ValidateToken checks the signature and expiry, then rejects tokens that
// were revoked by logout.
func (s *AuthService) ValidateToken(db *database.Database, tokenString string) (*JWTClaims, error) {
	claims, err := token.ValidateToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	var revoked models.RevokedToken
	err = db.DB.Where("token_id = ?", claims.ID).First(&revoked).Error
	if err == nil {
		return nil, ErrInvalidToken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return claims, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
