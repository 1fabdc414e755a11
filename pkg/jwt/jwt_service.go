package jwt

import (
	"errors"
	"fmt"
	"time"

	"foodgram-backend/domain"
	"foodgram-backend/internal/utils"

	"github.com/golang-jwt/jwt/v4"
)

type (
	JWTService interface {
		GenerateTokenUser(userID string, role string) (string, error)
		ValidateTokenUser(token string) (*jwt.Token, error)
		GetUserByToken(token string) (string, string, error)
		GenerateTokenResetPassword(userID string, duration time.Duration) (string, error)
		ValidateTokenResetPassword(token string) (string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		Role   string `json:"role"`
		jwt.RegisteredClaims
	}

	jwtResetClaim struct {
		UserID string `json:"user_id"`
		Scope  string `json:"scope"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
	}
)

const resetPasswordScope = "reset_password"

func NewJWTService() JWTService {
	return &jwtService{
		secretKey: utils.GetConfig("JWT_SECRET"),
		issuer:    "FOODGRAM",
	}
}

func (j *jwtService) GenerateTokenUser(userID string, role string) (string, error) {
	claims := jwtUserClaim{
		userID,
		role,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 24)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) ValidateTokenUser(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

// GetUserByToken returns the user id and role carried by a valid token.
func (j *jwtService) GetUserByToken(token string) (string, string, error) {
	parsed, err := j.ValidateTokenUser(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", "", domain.ErrTokenInvalid
	}

	claims := parsed.Claims.(*jwtUserClaim)
	return claims.UserID, claims.Role, nil
}

func (j *jwtService) GenerateTokenResetPassword(userID string, duration time.Duration) (string, error) {
	claims := jwtResetClaim{
		userID,
		resetPasswordScope,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ValidateTokenResetPassword checks the purpose-bound reset token and
// returns the user id it was issued for.
func (j *jwtService) ValidateTokenResetPassword(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwtResetClaim{}, j.parseToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !parsed.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims := parsed.Claims.(*jwtResetClaim)
	if claims.Scope != resetPasswordScope {
		return "", domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}
