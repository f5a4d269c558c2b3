package user

import (
	"context"

	"github.com/jamshiddins/vendbot/domain"
	"github.com/jamshiddins/vendbot/entities"
	"github.com/jamshiddins/vendbot/pkg/jwt"
	"github.com/jamshiddins/vendbot/pkg/operation"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID uint) (domain.UserResponse, error)
		AssignRole(ctx context.Context, req domain.AssignRoleRequest, actor domain.Actor) error
		RemoveRole(ctx context.Context, req domain.AssignRoleRequest, actor domain.Actor) error
	}

	userService struct {
		userRepository   UserRepository
		jwtService       jwt.JWTService
		operationService operation.OperationService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, operationService operation.OperationService) UserService {
	return &userService{
		userRepository:   userRepository,
		jwtService:       jwtService,
		operationService: operationService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetByTelegramID(ctx, req.TelegramID); err == nil {
		return domain.UserResponse{}, domain.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	u := &entities.User{
		TelegramID: req.TelegramID,
		Username:   req.Username,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Password:   string(hashed),
		IsActive:   true,
	}
	if err := s.userRepository.Create(ctx, u); err != nil {
		return domain.UserResponse{}, err
	}

	_, _ = s.operationService.Record(ctx, operation.RecordParams{
		UserID:        u.ID,
		OperationType: entities.OperationUserCreated,
		EntityType:    "user",
		EntityID:      &u.ID,
		Description:   "user registered: " + u.FullName,
		Success:       true,
	})
	return toUserResponse(u), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	u, err := s.userRepository.GetByTelegramID(ctx, req.TelegramID)
	if err != nil {
		return domain.LoginResponse{}, domain.ErrWrongCredentials
	}
	if !u.IsActive {
		return domain.LoginResponse{}, domain.ErrUserBlocked
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrWrongCredentials
	}

	roles := u.RoleNames()
	token := s.jwtService.GenerateToken(u.ID, roles)
	return domain.LoginResponse{Token: token, Roles: roles}, nil
}

func (s *userService) Me(ctx context.Context, userID uint) (domain.UserResponse, error) {
	u, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(u), nil
}

func (s *userService) AssignRole(ctx context.Context, req domain.AssignRoleRequest, actor domain.Actor) error {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.ErrUserNotAllowed
	}
	if err := s.userRepository.AssignRole(ctx, req.UserID, entities.UserRole(req.Role), actor.UserID); err != nil {
		return err
	}
	_, _ = s.operationService.Record(ctx, operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationRoleAssigned,
		EntityType:    "user",
		EntityID:      &req.UserID,
		Description:   "assigned role " + req.Role,
		Success:       true,
	})
	return nil
}

func (s *userService) RemoveRole(ctx context.Context, req domain.AssignRoleRequest, actor domain.Actor) error {
	if !actor.Can(domain.CapabilityAdmin) {
		return domain.ErrUserNotAllowed
	}
	if err := s.userRepository.RemoveRole(ctx, req.UserID, entities.UserRole(req.Role)); err != nil {
		return err
	}
	_, _ = s.operationService.Record(ctx, operation.RecordParams{
		UserID:        actor.UserID,
		OperationType: entities.OperationRoleRemoved,
		EntityType:    "user",
		EntityID:      &req.UserID,
		Description:   "removed role " + req.Role,
		Success:       true,
	})
	return nil
}

func toUserResponse(u *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:         u.ID,
		TelegramID: u.TelegramID,
		Username:   u.Username,
		FullName:   u.FullName,
		Phone:      u.Phone,
		IsActive:   u.IsActive,
		Roles:      u.RoleNames(),
	}
}
