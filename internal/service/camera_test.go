package service_test

import (
	"context"
	"testing"

	"github.com/clearlens/camwatch/internal/store"
	"github.com/stretchr/testify/require"
)

func TestGetCamerasPage(t *testing.T) {
	ctx := context.Background()

	t.Run("pages are 10 cameras with a total count", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCameras(t, 25)

		page, err := env.cams.GetCamerasPage(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Cameras, 10)
		require.Equal(t, "cam-00", page.Cameras[0].Name)

		last, err := env.cams.GetCamerasPage(ctx, 3)
		require.NoError(t, err)
		require.Len(t, last.Cameras, 5)
	})

	t.Run("page past the end is empty, not an error", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCameras(t, 5)

		page, err := env.cams.GetCamerasPage(ctx, 7)
		require.NoError(t, err)
		require.Empty(t, page.Cameras)
		require.Equal(t, 1, page.TotalPages)
	})

	t.Run("page below one is clamped", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCameras(t, 5)

		page, err := env.cams.GetCamerasPage(ctx, 0)
		require.NoError(t, err)
		require.Equal(t, 1, page.Page)
		require.Len(t, page.Cameras, 5)
	})

	t.Run("empty catalogue", func(t *testing.T) {
		env := newTestEnv(t)

		page, err := env.cams.GetCamerasPage(ctx, 1)
		require.NoError(t, err)
		require.Empty(t, page.Cameras)
		require.Equal(t, 0, page.TotalPages)
	})
}

func TestGetCamera(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches by id", func(t *testing.T) {
		env := newTestEnv(t)
		env.seedCameras(t, 3)

		page, err := env.cams.GetCamerasPage(ctx, 1)
		require.NoError(t, err)

		cam, err := env.cams.GetCamera(ctx, page.Cameras[0].ID)
		require.NoError(t, err)
		require.Equal(t, page.Cameras[0].Name, cam.Name)
	})

	t.Run("missing camera", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.cams.GetCamera(ctx, "nope")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
