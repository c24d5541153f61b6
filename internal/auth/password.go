// Package auth handles flatmate accounts and sessions: bcrypt password
// hashing, HS256 session tokens, and the HTTP middleware that puts the
// session flatmate on the request context.
package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/flathive/flathive/internal/model"
	"github.com/flathive/flathive/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// PasswordAuthenticator registers and verifies flatmates against the store
// using bcrypt.
type PasswordAuthenticator struct {
	flatmates store.Flatmates
}

func NewPasswordAuthenticator(flatmates store.Flatmates) *PasswordAuthenticator {
	return &PasswordAuthenticator{flatmates: flatmates}
}

// ValidateCredential checks the password against the minimum policy.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a flatmate account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, name, credential string) (*model.Flatmate, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}
	if existing, err := a.flatmates.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return a.flatmates.Create(ctx, &model.Flatmate{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// Authenticate verifies email and password and returns the flatmate. The
// error never distinguishes an unknown email from a wrong password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*model.Flatmate, error) {
	mate, err := a.flatmates.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(mate.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return mate, nil
}
