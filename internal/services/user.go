package services

import (
	"context"

	"github.com/yungbote/foodexplorer-backend/internal/data/repos"
	types "github.com/yungbote/foodexplorer-backend/internal/domain/user"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type UserService interface {
	List(ctx context.Context) ([]types.Profile, error)
	// EnsureAdmin creates an admin account, or promotes and re-keys the
	// existing account with that email.
	EnsureAdmin(ctx context.Context, in RegisterInput) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	auth     AuthService
	hasher   func(string) (string, error)
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo, auth AuthService, bcryptCost int) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		log:      serviceLog,
		userRepo: userRepo,
		auth:     auth,
		hasher:   func(pw string) (string, error) { return hashPassword(pw, bcryptCost) },
	}
}

func (us *userService) List(ctx context.Context) ([]types.Profile, error) {
	users, err := us.userRepo.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, apierr.OperationFailed("could not list users", err)
	}
	out := make([]types.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out, nil
}

func (us *userService) EnsureAdmin(ctx context.Context, in RegisterInput) (*types.User, error) {
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := us.userRepo.GetByEmail(dbc, normalizeEmail(in.Email))
	if err != nil {
		return nil, apierr.OperationFailed("could not look up user", err)
	}
	if existing == nil {
		created, err := us.auth.Register(ctx, in)
		if err != nil {
			return nil, err
		}
		existing = created
	} else if in.Password != "" {
		hash, err := us.hasher(in.Password)
		if err != nil {
			return nil, apierr.OperationFailed("could not hash password", err)
		}
		if err := us.userRepo.UpdatePassword(dbc, existing.ID, hash); err != nil {
			return nil, apierr.OperationFailed("could not update password", err)
		}
	}
	if existing.Role != types.RoleAdmin {
		if err := us.userRepo.UpdateRole(dbc, existing.ID, types.RoleAdmin); err != nil {
			return nil, apierr.OperationFailed("could not promote user", err)
		}
		existing.Role = types.RoleAdmin
	}
	us.log.Info("Admin ensured", "user_id", existing.ID)
	return existing, nil
}
