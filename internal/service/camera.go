package service

import (
	"context"

	"github.com/clearlens/camwatch/internal/domain"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/pkg/api"
)

// CamerasPerPage is the fixed page size for the camera listing.
const CamerasPerPage = 10

// CameraService serves the camera listing that authenticated users browse.
type CameraService struct {
	Store store.Store
}

// GetCamera fetches a single camera by id.
func (s *CameraService) GetCamera(ctx context.Context, id string) (api.Camera, error) {
	c, err := s.Store.Cameras().GetCameraByID(ctx, id)
	if err != nil {
		return api.Camera{}, err
	}
	return mapCamera(c), nil
}

// GetCamerasPage returns one page of cameras (1-based) plus the total page
// count. Pages past the end come back empty rather than erroring.
func (s *CameraService) GetCamerasPage(ctx context.Context, page int) (api.CamerasResponse, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.Store.Cameras().CountCameras(ctx)
	if err != nil {
		return api.CamerasResponse{}, err
	}

	totalPages := (total + CamerasPerPage - 1) / CamerasPerPage

	cameras, err := s.Store.Cameras().ListCameras(ctx, CamerasPerPage, (page-1)*CamerasPerPage)
	if err != nil {
		return api.CamerasResponse{}, err
	}

	out := make([]api.Camera, 0, len(cameras))
	for _, c := range cameras {
		out = append(out, mapCamera(c))
	}

	return api.CamerasResponse{
		Page:       page,
		Cameras:    out,
		TotalPages: totalPages,
	}, nil
}

func mapCamera(c domain.Camera) api.Camera {
	return api.Camera{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Contamination: c.Contamination,
		Date:          c.Date,
		URL:           c.URL,
	}
}
