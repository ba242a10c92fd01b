package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/clearlens/camwatch/internal/service"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/httpx"
	"github.com/clearlens/camwatch/pkg/slogx"
)

// CamerasHandler serves the camera listing endpoints.
type CamerasHandler struct {
	CameraService *service.CameraService
}

// HandleFirstPage godoc
//
//	@Summary		List cameras
//	@Description	Returns the first page of the camera listing (10 per page).
//	@Tags			Cameras
//	@Produce		json
//	@Success		200	{object}	api.CamerasResponse	"page, cameras, total_pages"
//	@Failure		401	{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/cameras [get].
func (h *CamerasHandler) HandleFirstPage(w http.ResponseWriter, r *http.Request) {
	h.writePage(w, r, 1)
}

// HandlePage godoc
//
//	@Summary		List cameras by page
//	@Description	Returns one page of the camera listing (10 per page, 1-based).
//	@Tags			Cameras
//	@Produce		json
//	@Param			page	path		int					true	"Page number (1-based)"
//	@Success		200		{object}	api.CamerasResponse	"page, cameras, total_pages"
//	@Failure		400		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/cameras/pages/{page} [get].
func (h *CamerasHandler) HandlePage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.PathValue("page"))
	if err != nil || page < 1 {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}
	h.writePage(w, r, page)
}

// HandleGet godoc
//
//	@Summary		Get camera
//	@Description	Returns a single camera by id.
//	@Tags			Cameras
//	@Produce		json
//	@Param			camera_id	path		string				true	"Camera id"
//	@Success		200			{object}	api.Camera			"camera"
//	@Failure		401			{object}	api.ErrorResponse	"error, error_description"
//	@Failure		404			{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/cameras/{camera_id} [get].
func (h *CamerasHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	cam, err := h.CameraService.GetCamera(ctx, r.PathValue("camera_id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			api.ErrResourceNotFound.WriteError(w)
			return
		}
		log.Error("camera fetch failed", "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, cam)
}

func (h *CamerasHandler) writePage(w http.ResponseWriter, r *http.Request, page int) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	resp, err := h.CameraService.GetCamerasPage(ctx, page)
	if err != nil {
		log.Error("camera page fetch failed", "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
