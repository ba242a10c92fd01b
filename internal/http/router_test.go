package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/clearlens/camwatch/internal/cache"
	"github.com/clearlens/camwatch/internal/domain"
	httpapi "github.com/clearlens/camwatch/internal/http"
	"github.com/clearlens/camwatch/internal/objstore"
	"github.com/clearlens/camwatch/internal/service"
	"github.com/clearlens/camwatch/internal/store"
	"github.com/clearlens/camwatch/internal/store/drivers/sqlite"
	"github.com/clearlens/camwatch/pkg/api"
	"github.com/clearlens/camwatch/pkg/cryptox"
	"github.com/clearlens/camwatch/pkg/idx"
	"github.com/clearlens/camwatch/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "camwatch-http-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

const testPassword = "Sup3r-secret!"

// memObjStore is an in-memory object store standing in for MinIO.
type memObjStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjStore() *memObjStore {
	return &memObjStore{objects: map[string][]byte{}}
}

func (m *memObjStore) Upload(_ context.Context, bucket, key string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memObjStore) Download(_ context.Context, bucket, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, objstore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *memObjStore) Exists(_ context.Context, bucket, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[bucket+"/"+key]
	return ok, nil
}

// testServer runs the full router over a real in-memory store and a
// miniredis-backed session cache, mirroring the production wiring.
type testServer struct {
	srv    *httptest.Server
	client *api.Client

	store   store.Store
	redis   *miniredis.Miniredis
	objects *memObjStore

	sentCodes map[string]string // email -> last sent code
}

func (ts *testServer) SendConfirmationCode(_ context.Context, email, code string) error {
	ts.sentCodes[email] = code
	return nil
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(cache.Config{URL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	codec, err := jwtx.NewCodec([]byte("test-secret-please-rotate"), "camwatch-test", []string{"camwatch-api"})
	require.NoError(t, err)

	ts := &testServer{
		store:     s,
		redis:     mr,
		objects:   newMemObjStore(),
		sentCodes: map[string]string{},
	}

	auth := &service.AuthService{Codec: codec, Store: s, Cache: c}

	router := httpapi.NewRouter("test", s, slog.New(slog.DiscardHandler))
	router.AuthService = auth
	router.UserService = &service.UserService{Store: s, Auth: auth, Sender: ts}
	router.CameraService = &service.CameraService{Store: s}
	router.ObjectStore = ts.objects
	router.ApplyRoutes()

	ts.srv = httptest.NewServer(router)
	t.Cleanup(ts.srv.Close)

	ts.client = api.NewClient(ts.srv.URL)
	return ts
}

// seedUser creates a confirmed user with login data and returns it.
func (ts *testServer) seedUser(t *testing.T, username string) domain.User {
	t.Helper()
	ctx := context.Background()

	role, err := ts.store.Roles().GetRoleByName(ctx, domain.RoleUser)
	require.NoError(t, err)

	hash, err := cryptox.HashPassword(testPassword)
	require.NoError(t, err)

	u := domain.User{
		ID:               idx.New().String(),
		Username:         username,
		Email:            username + "@example.com",
		RoleID:           role.ID,
		Salt:             "salt-" + username,
		IsEmailConfirmed: true,
	}
	require.NoError(t, ts.store.Users().CreateUser(ctx, u))
	require.NoError(t, ts.store.LoginData().CreateLoginData(ctx, domain.LoginData{
		UserID:       u.ID,
		PasswordHash: hash,
	}))
	return u
}

func (ts *testServer) seedCameras(t *testing.T, n int) []string {
	t.Helper()
	ctx := context.Background()

	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		id := idx.New().String()
		require.NoError(t, ts.store.Cameras().CreateCamera(ctx, domain.Camera{
			ID:            id,
			Name:          fmt.Sprintf("cam-%02d", i),
			Contamination: float64(i%100) / 100,
			Date:          time.Now().UTC(),
		}))
		ids = append(ids, id)
	}
	return ids
}

// postJSON fires a raw JSON POST, for endpoints the SDK client does not cover.
func (ts *testServer) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(ts.srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	return resp
}

func (ts *testServer) get(t *testing.T, path, accessToken string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.srv.URL+path, nil)
	require.NoError(t, err)
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestLoginLogoutFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	pair, err := ts.client.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	valid, err := ts.client.ValidateAccessToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	require.True(t, valid)

	require.NoError(t, ts.client.Logout(context.Background(), pair.AccessToken))

	// Salt rotation kills the whole outstanding pair.
	valid, err = ts.client.ValidateAccessToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	require.False(t, valid)

	_, err = ts.client.RefreshToken(context.Background(), pair.RefreshToken)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	// A fresh login works immediately after logout.
	pair2, err := ts.client.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)
	valid, err = ts.client.ValidateAccessToken(context.Background(), pair2.AccessToken)
	require.NoError(t, err)
	require.True(t, valid)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	var apiErr *api.Error

	_, err := ts.client.Login(context.Background(), "alice", "Wr0ng-password!")
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	_, err = ts.client.Login(context.Background(), "nobody", testPassword)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestRefreshIssuesNewPairWithoutRevokingOld(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	pair, err := ts.client.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	fresh, err := ts.client.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, fresh.AccessToken)

	for _, token := range []string{pair.AccessToken, fresh.AccessToken} {
		valid, err := ts.client.ValidateAccessToken(context.Background(), token)
		require.NoError(t, err)
		require.True(t, valid)
	}
}

func TestProtectedEndpointsRejectOpaquely(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	for name, token := range map[string]string{
		"no token":      "",
		"garbage token": "not-a-jwt",
	} {
		resp := ts.get(t, "/user/profile", token)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, name)
		require.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"), name)

		body := decodeBody[api.ErrorResponse](t, resp)
		require.Equal(t, "Could not validate credentials", body.ErrorDescription, name)
	}
}

func TestRegistrationFlow(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postJSON(t, "/user/register/begin", api.BeginRegistrationRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decodeBody[api.BeginRegistrationResponse](t, resp).Success)

	code := ts.sentCodes["bob@example.com"]
	require.Len(t, code, 6)

	// Cannot log in until the email is confirmed.
	_, err := ts.client.Login(context.Background(), "bob", testPassword)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	resp = ts.postJSON(t, "/user/register/check", api.CheckRegistrationCodeRequest{
		Email:            "bob@example.com",
		ConfirmationCode: code,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, decodeBody[api.CheckRegistrationCodeResponse](t, resp).Success)

	resp = ts.postJSON(t, "/user/register/complete", api.CompleteRegistrationRequest{
		Email:            "bob@example.com",
		ConfirmationCode: code,
		Name:             "Bob",
		Surname:          "Builder",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pair := decodeBody[api.TokenPairResponse](t, resp)
	require.NotEmpty(t, pair.AccessToken)

	profile, err := ts.client.GetProfile(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "Bob", profile.Name)
	require.Equal(t, "Builder", profile.Surname)
}

func TestRegistrationRejectsWrongCode(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postJSON(t, "/user/register/begin", api.BeginRegistrationRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = ts.postJSON(t, "/user/register/check", api.CheckRegistrationCodeRequest{
		Email:            "bob@example.com",
		ConfirmationCode: "000000",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody[api.ErrorResponse](t, resp)
	require.Equal(t, "Invalid account or confirmation code", body.ErrorDescription)
}

func TestRegistrationRejectsDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	resp := ts.postJSON(t, "/user/register/begin", api.BeginRegistrationRequest{
		Username: "alice",
		Email:    "fresh@example.com",
		Password: testPassword,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestRegistrationValidatesInput(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.postJSON(t, "/user/register/begin", api.BeginRegistrationRequest{
		Username: "x", // too short
		Email:    "bob@example.com",
		Password: testPassword,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = ts.postJSON(t, "/user/register/begin", api.BeginRegistrationRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "weak",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCameraPages(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ids := ts.seedCameras(t, 12)

	pair, err := ts.client.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	page1, err := ts.client.GetCamerasPage(context.Background(), pair.AccessToken, 1)
	require.NoError(t, err)
	require.Equal(t, 1, page1.Page)
	require.Len(t, page1.Cameras, 10)
	require.Equal(t, 2, page1.TotalPages)

	page2, err := ts.client.GetCamerasPage(context.Background(), pair.AccessToken, 2)
	require.NoError(t, err)
	require.Len(t, page2.Cameras, 2)

	// Pages past the end are empty, not an error.
	page9, err := ts.client.GetCamerasPage(context.Background(), pair.AccessToken, 9)
	require.NoError(t, err)
	require.Empty(t, page9.Cameras)
	require.Equal(t, 2, page9.TotalPages)

	// Bare /cameras serves the first page.
	resp := ts.get(t, "/cameras", pair.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decodeBody[api.CamerasResponse](t, resp)
	require.Equal(t, page1.Cameras, first.Cameras)

	resp = ts.get(t, "/cameras/"+ids[0], pair.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cam := decodeBody[api.Camera](t, resp)
	require.Equal(t, ids[0], cam.ID)

	resp = ts.get(t, "/cameras/"+idx.New().String(), pair.AccessToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/cameras/pages/abc", pair.AccessToken)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestStorageProxy(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	pair, err := ts.client.Login(context.Background(), "alice", testPassword)
	require.NoError(t, err)

	payload := []byte("frame-bytes")
	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/s3/frames/cam-01/latest.jpg", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/s3/frames/cam-01/latest.jpg", pair.AccessToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, payload, got)

	resp = ts.get(t, "/s3/frames/cam-99/missing.jpg", pair.AccessToken)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	resp = ts.get(t, "/s3/frames/cam-01/latest.jpg", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/livez", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "ok", decodeBody[api.HealthResponse](t, resp).Status)

	resp = ts.get(t, "/readyz", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	health := decodeBody[api.HealthResponse](t, resp)
	require.Equal(t, "ok", health.Status)
	require.Equal(t, "ok", health.Checks.Cache)

	// A dead session cache degrades readiness but not liveness.
	ts.redis.Close()

	resp = ts.get(t, "/readyz", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Equal(t, "degraded", decodeBody[api.HealthResponse](t, resp).Status)

	resp = ts.get(t, "/livez", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
