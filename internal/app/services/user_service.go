package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/repositories"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/auth"
	"github.com/cfascholars/backend/internal/pkg/logger"
	"github.com/cfascholars/backend/internal/pkg/session"
)

// UserStore is the subset of the user repository the user service needs.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context, params repositories.UserListParams) ([]*models.User, error)
	CountUsers(ctx context.Context, params repositories.UserListParams) (int64, error)
	UpdateEmail(ctx context.Context, id int64, email string) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfile(ctx context.Context, id int64, profile models.Profile) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
}

// UserService defines the interface for account and session operations
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ChangeEmail(ctx context.Context, userID int64, req *dto.ChangeEmailRequest) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	DeleteAccount(ctx context.Context, userID int64, token string) error

	AdminCreateUser(ctx context.Context, req *dto.AdminCreateUserRequest) (*models.User, error)
	AdminListUsers(ctx context.Context, role *models.Role, limit, skip int) ([]*models.User, int64, error)
	AdminUpdateUser(ctx context.Context, id int64, req *dto.AdminUpdateUserRequest) (*models.User, error)
	AdminDeleteUser(ctx context.Context, id int64) error
}

const passwordPolicyMessage = "password must be 8-32 characters and include upper and lower case letters, a digit and a special character"

// userServiceImpl implements UserService
type userServiceImpl struct {
	userStore UserStore
	sessions  session.Store
}

// NewUserService creates a new UserService
func NewUserService(userStore UserStore, sessions session.Store) UserService {
	return &userServiceImpl{
		userStore: userStore,
		sessions:  sessions,
	}
}

// Register creates a new student account. The role is never taken from the
// request; self-registration always produces a student.
func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if !auth.ValidatePasswordStrength(req.Password) {
		return nil, apperrors.NewValidationError(passwordPolicyMessage)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Role:     models.RoleStudent,
	}
	if req.Profile != nil {
		user.Profile = *req.Profile
	}
	if req.FirstName != "" {
		user.Profile.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.Profile.LastName = req.LastName
	}
	if req.Phone != "" {
		user.Profile.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth must use the YYYY-MM-DD format")
		}
		user.Profile.DateOfBirth = &dob
	}

	if _, err := s.userStore.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	logger.Info().Int64("userId", user.ID).Msg("User registered")
	return user, nil
}

// Login verifies credentials and opens a session, returning its token.
func (s *userServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error) {
	user, err := s.userStore.GetUserByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("error creating session: %w", err)
	}
	logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return user, token, nil
}

// Logout destroys the session behind the token. Unknown tokens are ignored.
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// GetUserByID retrieves a user by id.
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetUserByID(ctx, id)
}

// ChangeEmail updates the account email after re-verifying the password.
func (s *userServiceImpl) ChangeEmail(ctx context.Context, userID int64, req *dto.ChangeEmailRequest) (*models.User, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	newEmail := strings.ToLower(strings.TrimSpace(req.NewEmail))
	if err := s.userStore.UpdateEmail(ctx, userID, newEmail); err != nil {
		return nil, err
	}
	user.Email = newEmail
	return user, nil
}

// ChangePassword replaces the password after verifying the current one.
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if !auth.ValidatePasswordStrength(req.NewPassword) {
		return apperrors.NewValidationError(passwordPolicyMessage)
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.userStore.UpdatePassword(ctx, userID, hash)
}

// UpdateProfile merges the supplied fields into the stored profile.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.userStore.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.Profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.Profile.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Profile.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewValidationError("dateOfBirth must use the YYYY-MM-DD format")
		}
		user.Profile.DateOfBirth = &dob
	}

	if err := s.userStore.UpdateProfile(ctx, userID, user.Profile); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the caller's account and its current session.
// Sessions on other devices become orphaned and fail rehydration.
func (s *userServiceImpl) DeleteAccount(ctx context.Context, userID int64, token string) error {
	if err := s.userStore.DeleteUser(ctx, userID); err != nil {
		return err
	}
	if token != "" {
		if err := s.sessions.Destroy(ctx, token); err != nil {
			logger.Warn().Err(err).Int64("userId", userID).Msg("Failed to destroy session after account deletion")
		}
	}
	logger.Info().Int64("userId", userID).Msg("Account deleted")
	return nil
}

// AdminCreateUser creates an account with an explicit role.
func (s *userServiceImpl) AdminCreateUser(ctx context.Context, req *dto.AdminCreateUserRequest) (*models.User, error) {
	if !req.Role.IsValid() {
		return nil, apperrors.NewValidationError("role must be student or admin")
	}
	if !auth.ValidatePasswordStrength(req.Password) {
		return nil, apperrors.NewValidationError(passwordPolicyMessage)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: hash,
		Role:     req.Role,
	}
	if req.Profile != nil {
		user.Profile = *req.Profile
	}

	if _, err := s.userStore.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminListUsers retrieves a page of users with an optional role filter.
func (s *userServiceImpl) AdminListUsers(ctx context.Context, role *models.Role, limit, skip int) ([]*models.User, int64, error) {
	params := repositories.UserListParams{Role: role, Limit: limit, Skip: skip}
	users, err := s.userStore.GetAllUsers(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.userStore.CountUsers(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// AdminUpdateUser applies a partial admin-side update.
func (s *userServiceImpl) AdminUpdateUser(ctx context.Context, id int64, req *dto.AdminUpdateUserRequest) (*models.User, error) {
	user, err := s.userStore.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		if !req.Role.IsValid() {
			return nil, apperrors.NewValidationError("role must be student or admin")
		}
		user.Role = *req.Role
	}
	if req.Profile != nil {
		user.Profile = *req.Profile
	}

	if err := s.userStore.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminDeleteUser removes a user account.
func (s *userServiceImpl) AdminDeleteUser(ctx context.Context, id int64) error {
	return s.userStore.DeleteUser(ctx, id)
}
