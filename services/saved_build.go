package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/repository"
)

type SavedBuildService struct {
	builds repository.SavedBuildRepository
}

func NewSavedBuildService(builds repository.SavedBuildRepository) *SavedBuildService {
	return &SavedBuildService{builds: builds}
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// priceItems validates a category → component object and totals it.
func priceItems(raw json.RawMessage) (float64, error) {
	build, err := models.DecodeBuild(raw)
	if err != nil {
		return 0, ErrInvalidItems
	}
	return build.Total(), nil
}

func (s *SavedBuildService) List(ctx context.Context, userID string) ([]models.SavedBuild, error) {
	return s.builds.ListByUser(ctx, userID)
}

func (s *SavedBuildService) Create(ctx context.Context, userID string, req models.SavedBuildRequest) (*models.SavedBuild, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" || isEmptyJSON(req.Items) {
		return nil, ErrMissingBuild
	}
	total, err := priceItems(req.Items)
	if err != nil {
		return nil, err
	}
	b := &models.SavedBuild{
		UserID:     userID,
		Name:       strings.TrimSpace(*req.Name),
		Items:      req.Items,
		TotalPrice: total,
	}
	if err := s.builds.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Update renames and/or replaces the items of a build owned by userID.
func (s *SavedBuildService) Update(ctx context.Context, id, userID string, req models.SavedBuildRequest) (*models.SavedBuild, error) {
	b, err := s.builds.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrMissingBuild
		}
		b.Name = name
	}
	if !isEmptyJSON(req.Items) {
		total, err := priceItems(req.Items)
		if err != nil {
			return nil, err
		}
		b.Items = req.Items
		b.TotalPrice = total
	}
	if err := s.builds.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *SavedBuildService) Delete(ctx context.Context, id, userID string) error {
	return s.builds.Delete(ctx, id, userID)
}
