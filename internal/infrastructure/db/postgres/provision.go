package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/wss-platform/wss-backend/internal/domain"
	"github.com/wss-platform/wss-backend/internal/infrastructure/security"
)

type ProvisionHasher interface {
	Hash(password string) (string, error)
}

type ProvisionRepo interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, u domain.User) (domain.User, error)
}

// AdminSpec describes the administrative account to guarantee at startup.
// An empty Password means one is generated at provisioning time.
type AdminSpec struct {
	Email    string
	Username string
	Password string
}

// AdminResult reports what EnsureAdmin did. GeneratedPassword is set only
// when the account was created with a generated credential; the caller is
// expected to surface it exactly once.
type AdminResult struct {
	Created           bool
	Email             string
	GeneratedPassword string
}

// EnsureAdmin guarantees exactly one account with the given email exists and
// is a superuser. Re-running is a no-op; a concurrent creator winning the
// unique-constraint race is treated the same as the account already existing.
func EnsureAdmin(ctx context.Context, repo ProvisionRepo, hasher ProvisionHasher, spec AdminSpec) (AdminResult, error) {
	res := AdminResult{Email: spec.Email}

	_, err := repo.GetByEmail(ctx, spec.Email)
	if err == nil {
		return res, nil // already provisioned
	}
	if !domain.Is(err, "user_not_found") {
		return res, err
	}

	password := spec.Password
	if password == "" {
		generated, err := security.GeneratePassword(20)
		if err != nil {
			return res, err
		}
		password = generated
		res.GeneratedPassword = generated
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return res, err
	}

	_, err = repo.Create(ctx, domain.User{
		ID:           uuid.NewString(),
		Email:        spec.Email,
		Username:     spec.Username,
		PasswordHash: hash,
		IsSuperuser:  true,
		IsActive:     true,
	})
	if err != nil {
		if domain.Is(err, "email_already_exists") {
			// lost the race to another sequencer instance; same outcome
			res.GeneratedPassword = ""
			return res, nil
		}
		return res, err
	}

	res.Created = true
	return res, nil
}
