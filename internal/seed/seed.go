package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/cfascholars/backend/internal/app/models"
	appRepos "github.com/cfascholars/backend/internal/app/repositories"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	pkgAuth "github.com/cfascholars/backend/internal/pkg/auth"
)

const defaultAdminEmail = "admin@cfascholars.org"

// CreateDefaultData creates the default admin account if it doesn't exist.
// The password comes from ADMIN_PASSWORD; without it no account is seeded,
// so production deployments never get a well-known credential.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		lgr.Info().Msg("ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	userRepo := appRepos.NewUserRepository(dbPool)

	if _, err := userRepo.GetUserByEmail(ctx, defaultAdminEmail); err == nil {
		lgr.Debug().Str("email", defaultAdminEmail).Msg("Default admin already exists")
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hash, err := pkgAuth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &appModels.User{
		Email:    defaultAdminEmail,
		Password: hash,
		Role:     appModels.RoleAdmin,
		Profile: appModels.Profile{
			FirstName: "CFA",
			LastName:  "Admin",
		},
	}
	if _, err := userRepo.CreateUser(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
