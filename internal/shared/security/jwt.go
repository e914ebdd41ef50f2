package security

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrJWTSecretMissing = errors.New("JWT_SECRET is not set")

// EditTTL 是布局编辑令牌的有效期。
const EditTTL = 30 * 24 * time.Hour

// Claims 里的 LayoutID 决定令牌能编辑哪一个已发布布局。
type Claims struct {
	LayoutID string `json:"lid"`
	jwt.RegisteredClaims
}

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}
	return []byte(secret), nil
}

// Award 为布局签发编辑令牌。
func Award(layoutID string) (string, error) {
	key, err := jwtSecret()
	if err != nil {
		return "", err
	}
	if layoutID == "" {
		return "", errors.New("layout id is empty")
	}

	now := time.Now()
	claims := &Claims{
		LayoutID: layoutID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   layoutID,
			ExpiresAt: jwt.NewNumericDate(now.Add(EditTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// ParseToken 解析并验证 Token。
func ParseToken(tokenStr string) (*jwt.Token, *Claims, error) {
	key, err := jwtSecret()
	if err != nil {
		return nil, nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return key, nil
	})
	if err != nil {
		return nil, nil, err
	}
	if token == nil || !token.Valid {
		return nil, nil, jwt.ErrTokenInvalidClaims
	}
	return token, claims, nil
}

// VerifyLayoutToken 校验编辑令牌并返回其中的布局 id。
func VerifyLayoutToken(tokenStr string) (string, error) {
	_, claims, err := ParseToken(tokenStr)
	if err != nil {
		return "", err
	}
	if claims.LayoutID == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return claims.LayoutID, nil
}
