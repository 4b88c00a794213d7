package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/RentalDrive/RentalDrive/internal/common/apperr"
	"github.com/RentalDrive/RentalDrive/internal/common/config"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 访问令牌负载：用户ID（Subject）+ 邮箱 + 单一角色。
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenTTL 配置的 token 有效期。
func TokenTTL(cfg config.AuthConfig) time.Duration {
	if cfg.TokenTTLMin <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(cfg.TokenTTLMin) * time.Minute
}

// GenerateAccessToken 生成 HS256 JWT access token。
func GenerateAccessToken(cfg config.AuthConfig, userID, email, role string) (token string, expiresAt time.Time, err error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, fmt.Errorf("subject is empty")
	}
	if cfg.JWTSecret == "" {
		return "", time.Time{}, fmt.Errorf("jwt_secret is empty")
	}

	now := time.Now()
	expiresAt = now.Add(TokenTTL(cfg))

	c := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    cfg.Issuer,
			Audience:  audience(cfg.Audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := t.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseAccessToken 校验签名与标准字段（exp/nbf，可选 iss/aud），返回 Claims。
// 任何校验失败都归为 unauthorized。
func ParseAccessToken(cfg config.AuthConfig, tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "missing token")
	}
	if cfg.JWTSecret == "" {
		return nil, apperr.New(apperr.KindUnauthorized, "auth not configured")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return []byte(cfg.JWTSecret), nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || parsed == nil || !parsed.Valid {
		return nil, apperr.Wrap(apperr.KindUnauthorized, "invalid or expired token", err)
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid issuer")
	}
	if cfg.Audience != "" && !audienceContains(claims.Audience, cfg.Audience) {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid audience")
	}
	return claims, nil
}

func audience(aud string) jwt.ClaimStrings {
	if aud == "" {
		return nil
	}
	return jwt.ClaimStrings{aud}
}

func audienceContains(aud jwt.ClaimStrings, want string) bool {
	want = strings.TrimSpace(want)
	if want == "" || len(aud) == 0 {
		return false
	}
	for _, v := range aud {
		if strings.TrimSpace(v) == want {
			return true
		}
	}
	return false
}
