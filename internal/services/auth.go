package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/yungbote/foodexplorer-backend/internal/data/db"
	"github.com/yungbote/foodexplorer-backend/internal/data/repos"
	types "github.com/yungbote/foodexplorer-backend/internal/domain/user"
	"github.com/yungbote/foodexplorer-backend/internal/platform/apierr"
	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	User  types.Profile `json:"user"`
	Token string        `json:"token"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*types.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	// Authenticate resolves a bearer token to the identity of an existing
	// user. Every failure is reported as apierr.InvalidToken.
	Authenticate(ctx context.Context, tokenString string) (types.Identity, error)
}

type authService struct {
	log        *logger.Logger
	userRepo   repos.UserRepo
	tokens     TokenService
	bcryptCost int
}

func NewAuthService(log *logger.Logger, userRepo repos.UserRepo, tokens TokenService, bcryptCost int) AuthService {
	serviceLog := log.With("service", "AuthService")
	return &authService{
		log:        serviceLog,
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

const defaultBcryptCost = 8

func hashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (as *authService) Register(ctx context.Context, in RegisterInput) (*types.User, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, apierr.Validation("name, email and password are required")
	}
	dbc := dbctx.Context{Ctx: ctx}

	exists, err := as.userRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, apierr.OperationFailed("could not register user", err)
	}
	if exists {
		return nil, apierr.Conflict("email is already in use")
	}

	hash, err := hashPassword(in.Password, as.bcryptCost)
	if err != nil {
		return nil, apierr.OperationFailed("could not register user", err)
	}
	created, err := as.userRepo.Create(dbc, &types.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     types.RoleCustomer,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apierr.Conflict("email is already in use")
		}
		as.log.Error("Failed to create user", "error", err)
		return nil, apierr.OperationFailed("could not register user", err)
	}
	as.log.Info("User registered", "user_id", created.ID)
	return created, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apierr.Validation("email and password are required")
	}
	u, err := as.userRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, apierr.OperationFailed("could not sign in", err)
	}
	if u == nil {
		return nil, apierr.Unauthorized("incorrect email and/or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, apierr.Unauthorized("incorrect email and/or password")
	}
	token, err := as.tokens.Issue(u.ID)
	if err != nil {
		as.log.Error("Failed to issue token", "user_id", u.ID, "error", err)
		return nil, apierr.OperationFailed("could not sign in", err)
	}
	return &Session{User: u.Profile(), Token: token}, nil
}

func (as *authService) Authenticate(ctx context.Context, tokenString string) (types.Identity, error) {
	userID, err := as.tokens.Verify(tokenString)
	if err != nil {
		as.log.Debug("Token rejected", "error", err)
		return types.Identity{}, apierr.InvalidToken()
	}
	u, err := as.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !db.IsNotFound(err) {
			as.log.Warn("User lookup failed during authentication", "user_id", userID, "error", err)
		}
		return types.Identity{}, apierr.InvalidToken()
	}
	return u.Identity(), nil
}
