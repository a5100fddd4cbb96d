package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"nibash_backend/internal/app"
	"nibash_backend/internal/config"
	"nibash_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer mounts the fully wired router on an httptest server backed by
// the database DATABASE_URL points at.
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

func NewTestServer(t *testing.T) *TestServer {
	if err := config.LoadConfig(); err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}
	cfg := config.GetConfig()

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect to test database (%s): %v", cfg.Database.DSN, err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Professional{},
		&models.Wallet{},
		&models.ServiceRequest{},
		&models.Payment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	// Redis stays nil here: the rate limiter falls back to its in-memory
	// window, which the generous test budget never hits.
	router, _ := app.SetupRouter(cfg, db, nil)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables truncates everything between test groups.
func (ts *TestServer) ClearTables(t *testing.T) {
	err := ts.DB.Exec(
		"TRUNCATE TABLE users, professionals, wallets, service_requests, payments RESTART IDENTITY CASCADE",
	).Error
	if err != nil {
		t.Fatalf("failed to clear tables: %v", err)
	}
}

// SendRequest performs a JSON request against the test server.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBody)
}

// SendForm performs a form-encoded POST, the shape gateway IPNs arrive in.
func (ts *TestServer) SendForm(t *testing.T, path string, form map[string]string) (*http.Response, string) {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatalf("failed to build form request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("form request failed: %v", err)
	}

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBody)
}
