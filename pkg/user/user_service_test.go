package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"github.com/jamshiddins/vendbot/pkg/jwt"
	"github.com/jamshiddins/vendbot/pkg/operation"
)

func newTestService(t *testing.T) (UserService, UserRepository, operation.OperationRepository) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.UserRoleAssignment{},
		&entities.Operation{},
		&entities.Photo{},
	)
	require.NoError(t, err)

	userRepo := NewUserRepository(db)
	opRepo := operation.NewOperationRepository(db)
	svc := NewUserService(userRepo, jwt.NewJWTService(), operation.NewOperationService(opRepo))
	return svc, userRepo, opRepo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, opRepo := newTestService(t)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		TelegramID: 123456,
		Username:   "jamshid",
		FullName:   "Jamshid Karimov",
		Password:   "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
	assert.True(t, res.IsActive)

	// Registration lands in the operation log.
	ops, err := opRepo.List(context.Background(), domain.HistoryFilter{
		OperationType: string(entities.OperationUserCreated),
	})
	require.NoError(t, err)
	assert.Len(t, ops, 1)

	login, err := svc.Login(context.Background(), domain.LoginRequest{
		TelegramID: 123456,
		Password:   "correct horse battery",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestRegisterDuplicateTelegramID(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		TelegramID: 123456,
		FullName:   "Jamshid Karimov",
		Password:   "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), domain.RegisterRequest{
		TelegramID: 123456,
		FullName:   "Someone Else",
		Password:   "another password",
	})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		TelegramID: 123456,
		FullName:   "Jamshid Karimov",
		Password:   "correct horse battery",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		TelegramID: 123456,
		Password:   "wrong password",
	})
	assert.ErrorIs(t, err, domain.ErrWrongCredentials)

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		TelegramID: 999999,
		Password:   "correct horse battery",
	})
	assert.ErrorIs(t, err, domain.ErrWrongCredentials)
}

func TestLoginBlockedUser(t *testing.T) {
	svc, repo, _ := newTestService(t)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		TelegramID: 123456,
		FullName:   "Jamshid Karimov",
		Password:   "correct horse battery",
	})
	require.NoError(t, err)

	u, err := repo.GetByID(context.Background(), res.ID)
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, repo.Update(context.Background(), u))

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		TelegramID: 123456,
		Password:   "correct horse battery",
	})
	assert.ErrorIs(t, err, domain.ErrUserBlocked)
}

func TestAssignAndRemoveRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		TelegramID: 123456,
		FullName:   "Jamshid Karimov",
		Password:   "correct horse battery",
	})
	require.NoError(t, err)

	admin := domain.Actor{UserID: 99, Capabilities: []domain.Capability{domain.CapabilityAdmin}}
	nonAdmin := domain.Actor{UserID: 98, Capabilities: []domain.Capability{domain.CapabilityWarehouse}}

	err = svc.AssignRole(context.Background(), domain.AssignRoleRequest{
		UserID: res.ID,
		Role:   "warehouse",
	}, nonAdmin)
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	err = svc.AssignRole(context.Background(), domain.AssignRoleRequest{
		UserID: res.ID,
		Role:   "warehouse",
	}, admin)
	require.NoError(t, err)

	err = svc.AssignRole(context.Background(), domain.AssignRoleRequest{
		UserID: res.ID,
		Role:   "warehouse",
	}, admin)
	assert.ErrorIs(t, err, domain.ErrRoleAlreadyGranted)

	me, err := svc.Me(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"warehouse"}, me.Roles)

	err = svc.RemoveRole(context.Background(), domain.AssignRoleRequest{
		UserID: res.ID,
		Role:   "warehouse",
	}, admin)
	require.NoError(t, err)

	me, err = svc.Me(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Empty(t, me.Roles)
}
