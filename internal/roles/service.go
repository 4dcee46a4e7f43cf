package roles

import (
	"context"
	"fmt"
	"strings"

	"github.com/tenuestore/tenue-backend/pkg/db"
	"github.com/tenuestore/tenue-backend/pkg/db/models"
	"github.com/tenuestore/tenue-backend/pkg/enums"
	pkgerrors "github.com/tenuestore/tenue-backend/pkg/errors"
	"github.com/tenuestore/tenue-backend/pkg/logger"
)

// RoleDTO is the API view of a user's role.
type RoleDTO struct {
	UserID string         `json:"userId"`
	Role   enums.UserRole `json:"role"`
}

type Service interface {
	// RoleOf returns the stored role or enums.UserRoleUser.
	RoleOf(ctx context.Context, userID string) (enums.UserRole, error)
	Get(ctx context.Context, userID string) (*RoleDTO, error)
	Set(ctx context.Context, userID string, role enums.UserRole) (*RoleDTO, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("roles repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) RoleOf(ctx context.Context, userID string) (enums.UserRole, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	row, err := s.repo.Get(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return enums.UserRoleUser, nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user role")
	}
	return row.Role, nil
}

func (s *service) Get(ctx context.Context, userID string) (*RoleDTO, error) {
	role, err := s.RoleOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &RoleDTO{UserID: strings.TrimSpace(userID), Role: role}, nil
}

func (s *service) Set(ctx context.Context, userID string, role enums.UserRole) (*RoleDTO, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if err := s.repo.Upsert(ctx, &models.UserRole{UserID: userID, Role: role}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save user role")
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"target_user_id": userID, "role": string(role)}), "role.updated")
	return &RoleDTO{UserID: userID, Role: role}, nil
}
