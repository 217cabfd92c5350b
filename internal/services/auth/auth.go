package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"photo_portfolio/internal/lib/logger/sl"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Auth gates the admin surface: photo management and settings edits.
// The portfolio is single-owner, so there is one admin password (stored
// as a bcrypt hash in the config) instead of a user table. A successful
// login yields a signed bearer token for API clients; the HTTP layer
// additionally marks the session as authenticated.
type Auth struct {
	log          *slog.Logger
	passwordHash []byte
	tokenSecret  []byte
	tokenTTL     time.Duration
}

func New(log *slog.Logger, passwordHash, tokenSecret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		log:          log,
		passwordHash: []byte(passwordHash),
		tokenSecret:  []byte(tokenSecret),
		tokenTTL:     tokenTTL,
	}
}

func (a *Auth) Login(ctx context.Context, password string) (string, error) {
	const op = "auth.Login"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Info("attempting admin login")

	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		log.Warn("invalid credentials", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	claims := jwt.MapClaims{
		"admin": true,
		"jti":   uuid.NewString(),
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(a.tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.tokenSecret)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in successfully")

	return token, nil
}

// ValidateToken reports whether the bearer token is a valid, unexpired
// admin token issued by Login.
func (a *Auth) ValidateToken(tokenString string) bool {
	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return a.tokenSecret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	admin, ok := claims["admin"].(bool)
	return ok && admin
}
