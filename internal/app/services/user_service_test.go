package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfascholars/backend/internal/app/models"
	"github.com/cfascholars/backend/internal/app/models/dto"
	"github.com/cfascholars/backend/internal/app/repositories"
	"github.com/cfascholars/backend/internal/pkg/apperrors"
	"github.com/cfascholars/backend/internal/pkg/session"
)

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*models.User)}
}

func (s *fakeUserStore) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	stored := *user
	s.users[user.ID] = &stored
	return user.ID, nil
}

func (s *fakeUserStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeUserStore) GetAllUsers(ctx context.Context, params repositories.UserListParams) ([]*models.User, error) {
	var out []*models.User
	for _, user := range s.users {
		if params.Role != nil && user.Role != *params.Role {
			continue
		}
		copied := *user
		out = append(out, &copied)
	}
	return out, nil
}

func (s *fakeUserStore) CountUsers(ctx context.Context, params repositories.UserListParams) (int64, error) {
	users, _ := s.GetAllUsers(ctx, params)
	return int64(len(users)), nil
}

func (s *fakeUserStore) UpdateEmail(ctx context.Context, id int64, email string) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Email = email
	return nil
}

func (s *fakeUserStore) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	return nil
}

func (s *fakeUserStore) UpdateProfile(ctx context.Context, id int64, profile models.Profile) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Profile = profile
	return nil
}

func (s *fakeUserStore) UpdateUser(ctx context.Context, user *models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.ErrUserNotFound
	}
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeUserStore) DeleteUser(ctx context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func newUserServiceForTest() (UserService, *fakeUserStore, session.Store) {
	store := newFakeUserStore()
	sessions := session.NewMemoryStore(time.Hour)
	return NewUserService(store, sessions), store, sessions
}

func TestRegisterAlwaysCreatesStudent(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:     "  Jordan@Example.COM ",
		Password:  "Abcdef1!",
		FirstName: "Jordan",
		LastName:  "Rivera",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.Role)
	assert.Equal(t, "jordan@example.com", user.Email)
	assert.Equal(t, "Jordan", user.Profile.FirstName)
	assert.NotEqual(t, "Abcdef1!", user.Password)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "jordan@example.com",
		Password: "weak",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &dto.RegisterRequest{Email: "JORDAN@example.com", Password: "Abcdef1!"})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterParsesDateOfBirth(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	dob := "2004-07-19"
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "jordan@example.com",
		Password:    "Abcdef1!",
		DateOfBirth: &dob,
	})
	require.NoError(t, err)
	require.NotNil(t, user.Profile.DateOfBirth)
	assert.Equal(t, 2004, user.Profile.DateOfBirth.Year())

	bad := "19-07-2004"
	_, err = svc.Register(context.Background(), &dto.RegisterRequest{
		Email:       "casey@example.com",
		Password:    "Abcdef1!",
		DateOfBirth: &bad,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLoginOpensSession(t *testing.T) {
	svc, _, sessions := newUserServiceForTest()

	registered, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)

	userID, err := sessions.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jordan@example.com", Password: "Wrong1!pass"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailMapsToInvalidCredentials(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nobody@example.com", Password: "Abcdef1!"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "Wrong1!pass",
		NewPassword:     "Newpass1!",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "Abcdef1!",
		NewPassword:     "Newpass1!",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), &dto.LoginRequest{Email: "jordan@example.com", Password: "Newpass1!"})
	assert.NoError(t, err)
}

func TestChangeEmailRequiresPassword(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)

	_, err = svc.ChangeEmail(context.Background(), user.ID, &dto.ChangeEmailRequest{NewEmail: "new@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	updated, err := svc.ChangeEmail(context.Background(), user.ID, &dto.ChangeEmailRequest{NewEmail: "New@Example.com", Password: "Abcdef1!"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestDeleteAccountDestroysSession(t *testing.T) {
	svc, _, sessions := newUserServiceForTest()

	user, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)

	_, token, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "jordan@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background(), user.ID, token))

	_, err = sessions.Get(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	_, err = svc.GetUserByID(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAdminCreateUserHonorsRole(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	admin, err := svc.AdminCreateUser(context.Background(), &dto.AdminCreateUserRequest{
		Email:    "staff@cfascholars.org",
		Password: "Abcdef1!",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	_, err = svc.AdminCreateUser(context.Background(), &dto.AdminCreateUserRequest{
		Email:    "other@cfascholars.org",
		Password: "Abcdef1!",
		Role:     "superuser",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAdminListUsersFiltersByRole(t *testing.T) {
	svc, _, _ := newUserServiceForTest()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "student@example.com", Password: "Abcdef1!"})
	require.NoError(t, err)
	_, err = svc.AdminCreateUser(context.Background(), &dto.AdminCreateUserRequest{
		Email:    "staff@cfascholars.org",
		Password: "Abcdef1!",
		Role:     models.RoleAdmin,
	})
	require.NoError(t, err)

	role := models.RoleAdmin
	users, total, err := svc.AdminListUsers(context.Background(), &role, 50, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
}
