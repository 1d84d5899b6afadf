package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-site-keeper/internal/config"
	"github.com/MKhiriev/go-site-keeper/internal/logger"
	"github.com/MKhiriev/go-site-keeper/internal/service"
	"github.com/MKhiriev/go-site-keeper/models"
)

// ─────────────────────────────────────────────
// Service fakes
// ─────────────────────────────────────────────

// fakeAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type fakeAuthService struct {
	identifyFn    func(ctx context.Context, token string) (*models.Identity, error)
	profileFn     func(ctx context.Context, id *models.Identity) (models.User, error)
	createTokenFn func(ctx context.Context, userID int64) (models.Token, error)
}

func (f *fakeAuthService) Identify(ctx context.Context, token string) (*models.Identity, error) {
	return f.identifyFn(ctx, token)
}

func (f *fakeAuthService) Profile(ctx context.Context, id *models.Identity) (models.User, error) {
	return f.profileFn(ctx, id)
}

func (f *fakeAuthService) CreateToken(ctx context.Context, userID int64) (models.Token, error) {
	return f.createTokenFn(ctx, userID)
}

type fakeConfigService struct {
	getConfigFn    func(ctx context.Context, ns models.Namespace, id *models.Identity) (models.ConfigMap, error)
	updateConfigFn func(ctx context.Context, ns models.Namespace, id *models.Identity, entries models.ConfigMap) error
	clearCacheFn   func(ctx context.Context, id *models.Identity) error
	testAIFn       func(ctx context.Context, id *models.Identity, req models.AITestRequest) (models.AITestResult, error)
}

func (f *fakeConfigService) GetConfig(ctx context.Context, ns models.Namespace, id *models.Identity) (models.ConfigMap, error) {
	return f.getConfigFn(ctx, ns, id)
}

func (f *fakeConfigService) UpdateConfig(ctx context.Context, ns models.Namespace, id *models.Identity, entries models.ConfigMap) error {
	return f.updateConfigFn(ctx, ns, id, entries)
}

func (f *fakeConfigService) ClearCache(ctx context.Context, id *models.Identity) error {
	return f.clearCacheFn(ctx, id)
}

func (f *fakeConfigService) TestAI(ctx context.Context, id *models.Identity, req models.AITestRequest) (models.AITestResult, error) {
	return f.testAIFn(ctx, id, req)
}

type fakeFriendService struct {
	listFn        func(ctx context.Context, id *models.Identity) ([]models.Friend, error)
	createFn      func(ctx context.Context, id *models.Identity, req models.FriendRequest) (models.Friend, error)
	updateFn      func(ctx context.Context, id *models.Identity, friendID int64, req models.FriendRequest) (models.Friend, error)
	deleteFn      func(ctx context.Context, id *models.Identity, friendID int64) error
	checkHealthFn func(ctx context.Context) error
}

func (f *fakeFriendService) List(ctx context.Context, id *models.Identity) ([]models.Friend, error) {
	return f.listFn(ctx, id)
}

func (f *fakeFriendService) Create(ctx context.Context, id *models.Identity, req models.FriendRequest) (models.Friend, error) {
	return f.createFn(ctx, id, req)
}

func (f *fakeFriendService) Update(ctx context.Context, id *models.Identity, friendID int64, req models.FriendRequest) (models.Friend, error) {
	return f.updateFn(ctx, id, friendID, req)
}

func (f *fakeFriendService) Delete(ctx context.Context, id *models.Identity, friendID int64) error {
	return f.deleteFn(ctx, id, friendID)
}

func (f *fakeFriendService) CheckHealth(ctx context.Context) error {
	return f.checkHealthFn(ctx)
}

type fakeFaviconService struct {
	getFn    func(ctx context.Context) (models.ObjectContent, error)
	uploadFn func(ctx context.Context, id *models.Identity, data []byte, contentType string) error
	fetchFn  func(ctx context.Context, id *models.Identity, url string) error
}

func (f *fakeFaviconService) Get(ctx context.Context) (models.ObjectContent, error) {
	return f.getFn(ctx)
}

func (f *fakeFaviconService) Upload(ctx context.Context, id *models.Identity, data []byte, contentType string) error {
	return f.uploadFn(ctx, id, data, contentType)
}

func (f *fakeFaviconService) FetchFromURL(ctx context.Context, id *models.Identity, url string) error {
	return f.fetchFn(ctx, id, url)
}

type fakeStorageService struct {
	uploadFn func(ctx context.Context, id *models.Identity, filename string, data []byte, contentType string) (models.StoredObject, error)
	getFn    func(ctx context.Context, key string) (models.ObjectContent, error)
	listFn   func(ctx context.Context, id *models.Identity) ([]models.StoredObject, error)
	deleteFn func(ctx context.Context, id *models.Identity, key string) error
}

func (f *fakeStorageService) Upload(ctx context.Context, id *models.Identity, filename string, data []byte, contentType string) (models.StoredObject, error) {
	return f.uploadFn(ctx, id, filename, data, contentType)
}

func (f *fakeStorageService) Get(ctx context.Context, key string) (models.ObjectContent, error) {
	return f.getFn(ctx, key)
}

func (f *fakeStorageService) List(ctx context.Context, id *models.Identity) ([]models.StoredObject, error) {
	return f.listFn(ctx, id)
}

func (f *fakeStorageService) Delete(ctx context.Context, id *models.Identity, key string) error {
	return f.deleteFn(ctx, id, key)
}

// fakeAppInfoService implements service.AppInfoService for testing.
type fakeAppInfoService struct {
	version string
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.version
}

func (f *fakeAppInfoService) GetBuildInfo(_ context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo(f.version, "", "")
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var (
	adminID = &models.Identity{UserID: 1, IsAdmin: true}
	user2ID = &models.Identity{UserID: 2}
	user3ID = &models.Identity{UserID: 3}
)

// tokenAuth accepts the tokens "admin", "u2" and "u3".
func tokenAuth() *fakeAuthService {
	return &fakeAuthService{
		identifyFn: func(_ context.Context, token string) (*models.Identity, error) {
			switch token {
			case "admin":
				return adminID, nil
			case "u2":
				return user2ID, nil
			case "u3":
				return user3ID, nil
			}
			return nil, service.ErrUnauthenticated
		},
	}
}

var testConfig = config.StructuredConfig{
	Server:  config.Server{RequestTimeout: 5 * time.Second, MaxBodyBytes: 1 << 16},
	Storage: config.Storage{S3: config.S3{MaxUploadBytes: 1 << 16}},
}

// newTestHandler builds a Handler over svcs, filling AuthService and
// AppInfoService when they are not set.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()

	if svcs.AuthService == nil {
		svcs.AuthService = tokenAuth()
	}
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &fakeAppInfoService{version: "test"}
	}
	return NewHandler(svcs, testConfig, logger.Nop())
}

// serve runs one request through the full router. token may be empty.
func serve(h *Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}
