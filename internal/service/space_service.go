package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"membership-api/internal/model"
	"membership-api/pkg/apierror"
)

type spaceStore interface {
	Create(ctx context.Context, name string) (model.Space, error)
	FindByName(ctx context.Context, name string) (model.Space, error)
}

type SpaceService struct {
	spaces spaceStore
}

func NewSpaceService(spaces spaceStore) *SpaceService {
	return &SpaceService{spaces: spaces}
}

func (s *SpaceService) Create(ctx context.Context, name string) (model.Space, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Space{}, apierror.New(apierror.KindBadRequest, "name is required", "name")
	}

	space, err := s.spaces.Create(ctx, name)
	if errors.Is(err, model.ErrSpaceAlreadyExists) {
		return model.Space{}, apierror.New(apierror.KindAlreadyExists, fmt.Sprintf("Space %q already exists", name), "")
	}
	if err != nil {
		return model.Space{}, apierror.Wrap(apierror.KindDatabaseError, "create space", err)
	}
	return space, nil
}

func (s *SpaceService) FindByName(ctx context.Context, name string) (model.Space, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Space{}, apierror.New(apierror.KindBadRequest, "name is required", "name")
	}

	space, err := s.spaces.FindByName(ctx, name)
	if errors.Is(err, model.ErrSpaceNotFound) {
		return model.Space{}, apierror.New(apierror.KindNotFound, "space not found", name)
	}
	if err != nil {
		return model.Space{}, apierror.Wrap(apierror.KindDatabaseError, "find space", err)
	}
	return space, nil
}
