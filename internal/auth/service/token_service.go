package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/service TokenGenerator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Kashawn-Brown/Career-Tracker-sub003/internal/auth/dto"
	autherror "github.com/Kashawn-Brown/Career-Tracker-sub003/internal/errors"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type TokenGenerator interface {
	IssuePair(userID, email, role string) (*dto.TokenPair, error)
	VerifyAccess(tokenString string) (*JWTCustomClaims, error)
	VerifyRefresh(tokenString string) (*JWTCustomClaims, error)
	Rotate(refreshToken string) (*dto.TokenPair, error)
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
}

// TokenService signs access and refresh tokens with independent secrets so
// leaking one secret never compromises the other token class.
type TokenService struct {
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TokenType string `json:"type"`
}

func NewTokenService(accessSecret, refreshSecret string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret:  accessSecret,
		RefreshTokenSecret: refreshSecret,
		AccessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

// IssuePair mints a fresh access/refresh token pair for the given identity.
func (ts *TokenService) IssuePair(userID, email, role string) (*dto.TokenPair, error) {
	now := time.Now()

	accessToken, err := ts.sign(userID, email, role, TokenTypeAccess, now, now.Add(ts.AccessTokenExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := ts.sign(userID, email, role, TokenTypeRefresh, now, now.Add(ts.RefreshTokenExpiry))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &dto.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (ts *TokenService) sign(userID, email, role, tokenType string, issuedAt, expiresAt time.Time) (string, error) {
	claims := JWTCustomClaims{
		UserID:    userID,
		Email:     email,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	secret := ts.AccessTokenSecret
	if tokenType == TokenTypeRefresh {
		secret = ts.RefreshTokenSecret
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// VerifyAccess parses and validates an access token.
func (ts *TokenService) VerifyAccess(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, TokenTypeAccess)
}

// VerifyRefresh parses and validates a refresh token.
func (ts *TokenService) VerifyRefresh(tokenString string) (*JWTCustomClaims, error) {
	return ts.verify(tokenString, TokenTypeRefresh)
}

// verify checks the signature against the secret matching the token's own
// declared type, then compares that type with the expected one. A token of
// the wrong class therefore surfaces as ErrWrongTokenType rather than a
// signature failure.
func (ts *TokenService) verify(tokenString, wantType string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		switch claims.TokenType {
		case TokenTypeAccess:
			return []byte(ts.AccessTokenSecret), nil
		case TokenTypeRefresh:
			return []byte(ts.RefreshTokenSecret), nil
		default:
			return nil, fmt.Errorf("unknown token type %q", claims.TokenType)
		}
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, autherror.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", autherror.ErrTokenMalformed, err)
	}

	if !token.Valid {
		return nil, autherror.ErrTokenMalformed
	}

	if claims.TokenType != wantType {
		return nil, autherror.ErrWrongTokenType
	}

	return claims, nil
}

// Rotate verifies a refresh token and issues a replacement pair. Both tokens
// are replaced, so each rotation slides the session forward.
func (ts *TokenService) Rotate(refreshToken string) (*dto.TokenPair, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return nil, autherror.ErrMissingToken
	}

	claims, err := ts.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	return ts.IssuePair(claims.UserID, claims.Email, claims.Role)
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

func (ts *TokenService) GetRefreshTokenExpiry() time.Duration {
	return ts.RefreshTokenExpiry
}
