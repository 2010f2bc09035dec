package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(userID, tenantID string, roles []string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey           string
	accessTokenDuration string
	tokenAuth           *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenDuration string) Service {
	return &JWTService{
		secretKey:           secretKey,
		accessTokenDuration: accessTokenDuration,
		tokenAuth:           jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID, tenantID string, roles []string) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenDuration)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":   userID,
		"tenant_id": tenantID,
		"roles":     roles,
		"type":      "access",
		"exp":       expiresAt,
	})
	return tokenString, expiresAt, err
}
