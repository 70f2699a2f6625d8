package user

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/foodexplorer-backend/internal/domain/user"
	"github.com/yungbote/foodexplorer-backend/internal/platform/dbctx"
	"github.com/yungbote/foodexplorer-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, u *types.User) (*types.User, error)
	GetByID(dbc dbctx.Context, id uint) (*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	List(dbc dbctx.Context) ([]*types.User, error)
	UpdateRole(dbc dbctx.Context, id uint, role string) error
	UpdatePassword(dbc dbctx.Context, id uint, hash string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, u *types.User) (*types.User, error) {
	if u.Role == "" {
		u.Role = types.RoleCustomer
	}
	if err := dbc.DB(ur.db).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetByID returns gorm.ErrRecordNotFound when no row matches.
func (ur *userRepo) GetByID(dbc dbctx.Context, id uint) (*types.User, error) {
	var u types.User
	if err := dbc.DB(ur.db).Where("id = ?", id).Take(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns nil, nil when no row matches.
func (ur *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	var u types.User
	err := dbc.DB(ur.db).Where("email = ?", email).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (ur *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	var count int64
	if err := dbc.DB(ur.db).
		Model(&types.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (ur *userRepo) List(dbc dbctx.Context) ([]*types.User, error) {
	var results []*types.User
	if err := dbc.DB(ur.db).Order("name ASC").Order("id ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) UpdateRole(dbc dbctx.Context, id uint, role string) error {
	return dbc.DB(ur.db).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("role", role).Error
}

func (ur *userRepo) UpdatePassword(dbc dbctx.Context, id uint, hash string) error {
	return dbc.DB(ur.db).
		Model(&types.User{}).
		Where("id = ?", id).
		Update("password", hash).Error
}
