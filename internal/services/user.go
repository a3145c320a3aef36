package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/careerpath/careerpath-backend/internal/data/repos"
	types "github.com/careerpath/careerpath-backend/internal/domain"
	"github.com/careerpath/careerpath-backend/internal/platform/apierr"
	"github.com/careerpath/careerpath-backend/internal/platform/ctxutil"
	"github.com/careerpath/careerpath-backend/internal/platform/dbctx"
	"github.com/careerpath/careerpath-backend/internal/platform/logger"
)

type ProfileInput struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	PhoneNumber *string `json:"phoneNumber"`
	Country     *string `json:"country"`
	City        *string `json:"city"`
	ZipCode     *string `json:"zipCode"`
}

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{db: db, log: log.With("service", "UserService"), userRepo: userRepo}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	return us.load(dbctx.Context{Ctx: ctx}, userID)
}

func (us *userService) UpdateProfile(ctx context.Context, in ProfileInput) (*types.User, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	upd := repos.ProfileUpdate{
		FirstName:   strings.TrimSpace(in.FirstName),
		LastName:    strings.TrimSpace(in.LastName),
		PhoneNumber: trimPtr(in.PhoneNumber),
		Country:     trimPtr(in.Country),
		City:        trimPtr(in.City),
		ZipCode:     trimPtr(in.ZipCode),
	}
	if upd.FirstName == "" || upd.LastName == "" {
		return nil, apierr.Validationf("firstName and lastName are required")
	}

	var out *types.User
	err = us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := us.userRepo.UpdateProfile(dbc, userID, upd); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		out, err = us.load(dbc, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (us *userService) load(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(dbc, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user")
	}
	return users[0], nil
}

// requireUser returns the authenticated caller or an unauthorized error.
func requireUser(ctx context.Context) (uuid.UUID, error) {
	owner := ctxutil.OwnerID(ctx)
	if owner == nil {
		return uuid.Nil, apierr.Unauthorized("unauthorized")
	}
	return *owner, nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
