//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/config"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/db"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/router"
	"gorm.io/gorm"
)

var (
	testDB     *gorm.DB
	testRouter *gin.Engine
)

func TestMain(m *testing.M) {
	cfg := config.New()
	cfg.GinMode = gin.TestMode
	cfg.DBHost = os.Getenv("POSTGRES_HOST")
	cfg.DBPort = os.Getenv("POSTGRES_PORT")
	cfg.DBUser = os.Getenv("POSTGRES_USER")
	cfg.DBPass = os.Getenv("POSTGRES_PASSWORD")
	cfg.DBName = os.Getenv("POSTGRES_DB")
	cfg.DBSSLMode = "disable"
	cfg.DBConnectAttempts = 5
	cfg.DBConnectDelay = time.Second
	if tz := os.Getenv("TZ"); tz != "" {
		cfg.TZ = tz
	}

	database, err := db.ConnectWithRetry(context.Background(), cfg, zerolog.New(io.Discard))
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	testDB = database

	if err := db.Migrate(database); err != nil {
		panic("failed to migrate: " + err.Error())
	}

	gin.SetMode(gin.TestMode)
	r, err := router.New(router.Deps{
		DB:        database,
		Logger:    zerolog.New(io.Discard),
		Metrics:   metrics.NewManager(),
		Version:   "integration",
		StartTime: time.Now(),
	})
	if err != nil {
		panic("failed to build router: " + err.Error())
	}
	testRouter = r

	os.Exit(m.Run())
}

func resetDB(t *testing.T) {
	t.Helper()
	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}
	_, err = sqlDB.Exec("TRUNCATE TABLE books, authors RESTART IDENTITY CASCADE;")
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

type apiClient struct {
	t    *testing.T
	base string
	http *http.Client
}

func newClient(t *testing.T) *apiClient {
	t.Helper()
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	t.Cleanup(srv.Close)

	return &apiClient{t: t, base: srv.URL, http: srv.Client()}
}

func (c *apiClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

type author struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type book struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	AuthorID      uint   `json:"authorId"`
	DatePublished string `json:"datePublished"`
	IsFiction     bool   `json:"isFiction"`
}

type apiError struct {
	Code   string `json:"code"`
	Errors []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"errors"`
}

func (c *apiClient) createAuthor(first, last string) author {
	c.t.Helper()

	var a author
	if code := c.do(http.MethodPost, "/api/authors", map[string]string{"firstName": first, "lastName": last}, &a); code != http.StatusCreated {
		c.t.Fatalf("expected 201 when creating author, got %d", code)
	}
	return a
}

func (c *apiClient) createBook(authorID uint, title, published string, fiction bool) book {
	c.t.Helper()

	payload := map[string]any{
		"title":         title,
		"authorId":      authorID,
		"datePublished": published,
		"isFiction":     fiction,
	}

	var b book
	if code := c.do(http.MethodPost, "/api/books", payload, &b); code != http.StatusCreated {
		c.t.Fatalf("expected 201 when creating book, got %d", code)
	}
	return b
}

func TestAuthorLifecycle_BackendIntegration(t *testing.T) {
	c := newClient(t)

	created := c.createAuthor("Jane", "Austen")
	if created.ID == 0 {
		t.Fatalf("expected author id in response")
	}

	var fetched author
	if code := c.do(http.MethodGet, fmt.Sprintf("/api/authors/%d", created.ID), nil, &fetched); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if fetched != created {
		t.Errorf("expected %+v, got %+v", created, fetched)
	}

	var updated author
	code := c.do(http.MethodPut, fmt.Sprintf("/api/authors/%d", created.ID),
		map[string]string{"firstName": "Cassandra", "lastName": "Austen"}, &updated)
	if code != http.StatusOK || updated.FirstName != "Cassandra" {
		t.Fatalf("expected 200 with new name, got %d %+v", code, updated)
	}

	if code := c.do(http.MethodDelete, fmt.Sprintf("/api/authors/%d", created.ID), nil, nil); code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", code)
	}

	if code := c.do(http.MethodGet, fmt.Sprintf("/api/authors/%d", created.ID), nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestBookLifecycle_BackendIntegration(t *testing.T) {
	c := newClient(t)

	a := c.createAuthor("Mary", "Shelley")
	created := c.createBook(a.ID, "Frankenstein", "1818-01-01", true)

	if created.DatePublished != "1818-01-01" || created.AuthorID != a.ID {
		t.Fatalf("unexpected book: %+v", created)
	}

	var list []book
	if code := c.do(http.MethodGet, "/api/books", nil, &list); code != http.StatusOK || len(list) != 1 {
		t.Fatalf("expected one book, got %d %+v", code, list)
	}

	var updated book
	code := c.do(http.MethodPut, fmt.Sprintf("/api/books/%d", created.ID), map[string]any{
		"title":         "The Last Man",
		"authorId":      a.ID,
		"datePublished": "1826-01-23",
		"isFiction":     false,
	}, &updated)
	if code != http.StatusOK || updated.Title != "The Last Man" || updated.IsFiction {
		t.Fatalf("expected 200 with replaced book, got %d %+v", code, updated)
	}

	if code := c.do(http.MethodDelete, fmt.Sprintf("/api/books/%d", created.ID), nil, nil); code != http.StatusOK {
		t.Fatalf("expected 200 on delete, got %d", code)
	}
	if code := c.do(http.MethodGet, fmt.Sprintf("/api/books/%d", created.ID), nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", code)
	}
}

func TestReferentialIntegrity_BackendIntegration(t *testing.T) {
	c := newClient(t)

	var errResp apiError
	code := c.do(http.MethodPost, "/api/books", map[string]any{
		"title":         "Orphan",
		"authorId":      4242,
		"datePublished": "2000-01-01",
		"isFiction":     true,
	}, &errResp)
	if code != http.StatusBadRequest || errResp.Code != "AUTHOR_NOT_FOUND" {
		t.Fatalf("expected 400 AUTHOR_NOT_FOUND, got %d %+v", code, errResp)
	}

	a := c.createAuthor("Jane", "Austen")
	c.createBook(a.ID, "Emma", "1815-12-23", true)

	errResp = apiError{}
	code = c.do(http.MethodDelete, fmt.Sprintf("/api/authors/%d", a.ID), nil, &errResp)
	if code != http.StatusConflict || errResp.Code != "AUTHOR_HAS_BOOKS" {
		t.Fatalf("expected 409 AUTHOR_HAS_BOOKS, got %d %+v", code, errResp)
	}
}

func TestValidation_BackendIntegration(t *testing.T) {
	c := newClient(t)

	var errResp apiError
	code := c.do(http.MethodPost, "/api/authors", map[string]any{"firstName": 123, "lastName": "Austen"}, &errResp)
	if code != http.StatusBadRequest || len(errResp.Errors) != 1 || errResp.Errors[0].Field != "firstName" {
		t.Fatalf("expected 400 on firstName, got %d %+v", code, errResp)
	}

	var list []author
	c.do(http.MethodGet, "/api/authors", nil, &list)
	if len(list) != 0 {
		t.Fatalf("expected nothing stored, got %+v", list)
	}
}
