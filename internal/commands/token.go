package commands

import (
	"crypto/rsa"
	"os"
	"time"

	"timetrack/backend/internal/auth"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// TokenClaims identifies the signed-in account inside a token pair.
type TokenClaims struct {
	ID   int
	Role string
}

// GenToken issues an access/refresh token pair signed with the RS256 key
// at privateKeyPath.
func GenToken(claims TokenClaims, privateKeyPath string) (string, string, error) {
	key, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return "", "", err
	}

	now := time.Now()

	accessToken, err := signToken(auth.Claims{
		UserId: claims.ID,
		Role:   claims.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(accessTokenTTL).Unix(),
		},
	}, key)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshToken, err := signToken(auth.Claims{
		UserId: claims.ID,
		Role:   claims.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(refreshTokenTTL).Unix(),
		},
	}, key)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens validates a token pair for refresh. The access token may be
// expired; the refresh token may not.
func VerifyTokens(accessToken, refreshToken, privateKeyPath string) (auth.Claims, auth.Claims, error) {
	key, err := loadPrivateKey(privateKeyPath)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, err
	}

	accessClaims, err := parseToken(accessToken, key)
	if err != nil {
		ve, ok := errors.Cause(err).(*jwt.ValidationError)
		if !ok || ve.Errors&jwt.ValidationErrorExpired == 0 {
			return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "verifying access token")
		}
	}

	refreshClaims, err := parseToken(refreshToken, key)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "verifying refresh token")
	}

	if accessClaims.UserId != refreshClaims.UserId {
		return auth.Claims{}, auth.Claims{}, errors.New("token pair mismatch")
	}

	return accessClaims, refreshClaims, nil
}

func signToken(claims auth.Claims, key *rsa.PrivateKey) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
}

func parseToken(tokenStr string, key *rsa.PrivateKey) (auth.Claims, error) {
	var claims auth.Claims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return &key.PublicKey, nil
	})
	return claims, err
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading private key")
	}

	key, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, errors.Wrap(err, "parsing private key")
	}

	return key, nil
}
