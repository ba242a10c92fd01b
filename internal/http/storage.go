package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/clearlens/camwatch/internal/objstore"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/httpx"
	"github.com/clearlens/camwatch/pkg/slogx"
)

// maxUploadBytes caps proxied uploads. Camera frames are small; anything
// larger goes to the store directly, not through the auth service.
const maxUploadBytes = 32 << 20 // 32 MiB

// StorageHandler proxies uploads and downloads to the S3-compatible store so
// clients never hold store credentials.
type StorageHandler struct {
	ObjectStore objstore.Store
}

// HandleUpload godoc
//
//	@Summary		Upload object
//	@Description	Streams the request body into the object store under the given bucket and key.
//	@Tags			Storage
//	@Accept			octet-stream
//	@Produce		json
//	@Param			bucket	path	string	true	"Bucket name"
//	@Param			key		path	string	true	"Object key"
//	@Success		201		"Created"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		503		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/s3/{bucket}/{key} [post].
func (h *StorageHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bucket, key := r.PathValue("bucket"), r.PathValue("key")
	if bucket == "" || key == "" {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	defer body.Close()

	err := h.ObjectStore.Upload(ctx, bucket, key, body, r.ContentLength, r.Header.Get("Content-Type"))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.NewValidationError("request body exceeds the upload limit").WriteError(w)
			return
		}
		log.Error("object upload failed", "bucket", bucket, "key", key, "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}

	httpx.NoCache(w)
	w.WriteHeader(http.StatusCreated)
}

// HandleDownload godoc
//
//	@Summary		Download object
//	@Description	Streams an object out of the store.
//	@Tags			Storage
//	@Produce		octet-stream
//	@Param			bucket	path	string	true	"Bucket name"
//	@Param			key		path	string	true	"Object key"
//	@Success		200		"Object bytes"
//	@Failure		401		{object}	api.ErrorResponse	"error, error_description"
//	@Failure		404		{object}	api.ErrorResponse	"error, error_description"
//	@Security		BearerAuth
//	@Router			/s3/{bucket}/{key} [get].
func (h *StorageHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	bucket, key := r.PathValue("bucket"), r.PathValue("key")
	if bucket == "" || key == "" {
		api.ErrInvalidRequestBody.WriteError(w)
		return
	}

	obj, err := h.ObjectStore.Download(ctx, bucket, key)
	if err != nil {
		if errors.Is(err, objstore.ErrNotFound) {
			api.ErrResourceNotFound.WriteError(w)
			return
		}
		log.Error("object download failed", "bucket", bucket, "key", key, "err", err)
		api.ErrStoreUnavailable.WriteError(w)
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, obj); err != nil {
		// Headers are already out; all we can do is log the broken stream.
		log.Warn("object stream interrupted", "bucket", bucket, "key", key, "err", err)
	}
}
