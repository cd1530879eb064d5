package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AccessTokenTTL  = 2 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// TokenService issues and verifies the HMAC JWT pair the auth routes use.
type TokenService struct {
	DB            *gorm.DB
	Secret        string
	RefreshSecret string
}

func NewTokenService(db *gorm.DB, secret, refreshSecret string) *TokenService {
	return &TokenService{DB: db, Secret: secret, RefreshSecret: refreshSecret}
}

// RoleNames returns the role names assigned to a user.
func (s *TokenService) RoleNames(userID uuid.UUID) ([]string, error) {
	var names []string
	err := s.DB.Table("user_roles").
		Select("roles.role_name").
		Joins("JOIN roles ON roles.role_id = user_roles.user_role_role_id").
		Where("user_roles.user_role_user_id = ? AND roles.role_deleted_at IS NULL", userID).
		Order("roles.role_name ASC").
		Pluck("roles.role_name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// IssuePair signs an access token carrying the user's roles plus a
// refresh token carrying only the subject.
func (s *TokenService) IssuePair(userID uuid.UUID, roles []string) (access, refresh string, err error) {
	now := time.Now()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"id":    userID.String(),
		"roles": roles,
		"iat":   now.Unix(),
		"exp":   now.Add(AccessTokenTTL).Unix(),
	}).SignedString([]byte(s.Secret))
	if err != nil {
		return "", "", err
	}

	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenTTL).Unix(),
	}).SignedString([]byte(s.RefreshSecret))
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// VerifyRefresh parses a refresh token and returns its subject.
func (s *TokenService) VerifyRefresh(token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefreshToken
		}
		return []byte(s.RefreshSecret), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}
