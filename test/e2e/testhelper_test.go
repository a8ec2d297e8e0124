package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/geocrop/internal/adapter/handler"
	"github.com/marcos-nsantos/geocrop/internal/adapter/repository/memory"
	pgRepo "github.com/marcos-nsantos/geocrop/internal/adapter/repository/postgres"
	"github.com/marcos-nsantos/geocrop/internal/domain/entity"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/auth"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/config"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/database"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/messaging"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/middleware"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/projection"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/server"
	"github.com/marcos-nsantos/geocrop/internal/infrastructure/vectorstore"
	authUC "github.com/marcos-nsantos/geocrop/internal/usecase/auth"
	"github.com/marcos-nsantos/geocrop/internal/usecase/crop"
	"github.com/marcos-nsantos/geocrop/internal/usecase/session"
)

const (
	testDBUser       = "testuser"
	testDBPassword   = "testpass"
	testDBName       = "testdb"
	testJWTSecret    = "test-secret-key-for-e2e-tests"
	testOperator     = "cartographer"
	testOperatorPass = "securePassword123"
	apiBasePath      = "/api/v1"
)

type TestApp struct {
	Server     *httptest.Server
	Pool       *pgxpool.Pool
	Container  testcontainers.Container
	BaseURL    string
	DataDir    string
	OutputDir  string
	httpClient *http.Client
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping e2e test in short mode")
	}

	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	// Start PostgreSQL container with PostGIS
	pgContainer, err := postgres.Run(ctx,
		"postgis/postgis:18-3.6-alpine",
		postgres.WithDatabase(testDBName),
		postgres.WithUsername(testDBUser),
		postgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Create connection pool
	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	// Run migrations
	err = database.RunMigrations(ctx, pool, getMigrationsPath())
	require.NoError(t, err)

	dataDir := t.TempDir()
	outputDir := t.TempDir()

	// Dataset formats and repositories
	registry := vectorstore.NewRegistry(
		vectorstore.NewShapefileStore(),
		vectorstore.NewGeoJSONStore(),
		vectorstore.NewPostGISStore(pool),
	)
	exportRepo := pgRepo.NewExportRepo(pool)

	// Initialize infrastructure services
	reprojector := projection.NewReprojector()
	jwtSvc := auth.NewJWTService(testJWTSecret, 15*time.Minute)
	passwordHasher := auth.NewPasswordHasher(4) // Lower cost for faster tests

	hash, err := passwordHasher.Hash(testOperatorPass)
	require.NoError(t, err)

	logger, _ := zap.NewDevelopment()

	// Initialize use cases
	exporter := crop.NewExporter(registry, reprojector, logger, crop.Options{
		OutputDir: outputDir,
		Overwrite: true,
		Workers:   2,
	})
	sessionSvc := session.NewService(session.Deps{
		Sessions: memory.NewSessionRepo(),
		Exports:  exportRepo,
		Resolver: registry,
		Boxes:    reprojector,
		Exporter: exporter,
		Notifier: messaging.Noop{},
		Logger:   logger,
	}, session.Options{SessionTTL: time.Hour})
	authSvc := authUC.NewService(entity.NewOperator(testOperator, hash), jwtSvc, passwordHasher)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtSvc)
	rateLimiter := middleware.NewRateLimiter(config.RateLimitConfig{
		Enabled:        true,
		RequestsPerMin: 6000,
		BurstSize:      100,
	})

	// Create router
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:    authHandler,
		SessionHandler: sessionHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		Logger:         logger,
		Environment:    "test",
	})

	// Create test server
	ts := httptest.NewServer(router.Engine())

	return &TestApp{
		Server:    ts,
		Pool:      pool,
		Container: pgContainer,
		BaseURL:   ts.URL,
		DataDir:   dataDir,
		OutputDir: outputDir,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (app *TestApp) cleanup(t *testing.T) {
	t.Helper()

	app.Server.Close()
	app.Pool.Close()

	ctx := context.Background()
	if err := app.Container.Terminate(ctx); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) request(method, path string, body any, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	fullPath := apiBasePath + path
	req, err := http.NewRequest(method, app.BaseURL+fullPath, bodyReader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return app.httpClient.Do(req)
}

func (app *TestApp) get(path string, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodGet, path, nil, headers)
}

func (app *TestApp) post(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPost, path, body, headers)
}

func (app *TestApp) put(path string, body any, headers map[string]string) (*http.Response, error) {
	return app.request(http.MethodPut, path, body, headers)
}

// login returns a bearer token for the configured operator.
func (app *TestApp) login(t *testing.T) string {
	t.Helper()

	resp, err := app.post("/auth/login", map[string]string{
		"name":     testOperator,
		"password": testOperatorPass,
	}, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]any
	parseResponse(t, resp, &loginResp)
	return loginResp["access_token"].(string)
}

// writeDataset writes a GeoJSON file into the app's data directory.
func (app *TestApp) writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(app.DataDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func parseResponse(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if dest != nil {
		err = json.Unmarshal(body, dest)
		require.NoError(t, err, "response body: %s", string(body))
	}
}

func authHeader(token string) map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + token,
	}
}

// getMigrationsPath returns the absolute path to the migrations directory
func getMigrationsPath() string {
	_, filename, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(filename)
	return filepath.Join(testDir, "..", "..", "migrations")
}
