package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/haergo/workforce-backend-go/internal/domain/user"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service verifies bearer tokens issued by the identity provider. Token
// issuance belongs to that provider; the access-token generator here exists
// for operational tooling and tests.
type Service interface {
	GenerateAccessToken(userID string, employeeID *string, role user.Role) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(userID string, employeeID *string, role user.Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"user_id": userID,
		"role":    string(role),
		"type":    "access",
		"exp":     expiresAt,
	}
	if employeeID != nil {
		claims["employee_id"] = *employeeID
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
