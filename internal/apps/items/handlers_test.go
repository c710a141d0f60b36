package items

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rsh/tracker-backend/internal/config"
	"github.com/rsh/tracker-backend/internal/middleware"
	"github.com/rsh/tracker-backend/internal/models"
	"github.com/rsh/tracker-backend/internal/services"
)

type testEnv struct {
	app  *fiber.App
	db   *gorm.DB
	auth *services.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &Category{}, &Item{}))

	cfg := &config.Config{SecretKey: "test-secret-key", TokenExpiry: 24 * time.Hour}

	app := fiber.New()
	api := app.Group("/api")
	New().RegisterRoutes(api, middleware.Protected(cfg, db), db, cfg)

	return &testEnv{
		app:  app,
		db:   db,
		auth: services.NewAuthService(db, cfg, nil),
	}
}

func (e *testEnv) createUser(t *testing.T, email, username string) (*models.User, string) {
	t.Helper()
	user, err := e.auth.Register(email, username, "password123")
	require.NoError(t, err)
	token, err := e.auth.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestListCategories(t *testing.T) {
	t.Run("public, no token required", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.request(t, "GET", "/api/categories", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Empty(t, body["categories"])
	})

	t.Run("ordered by name", func(t *testing.T) {
		env := newTestEnv(t)
		for _, name := range []string{"Work", "Archive", "Personal"} {
			require.NoError(t, env.db.Create(&Category{Name: name}).Error)
		}

		resp := env.request(t, "GET", "/api/categories", "", nil)
		body := decodeBody(t, resp)
		categories := body["categories"].([]interface{})
		require.Len(t, categories, 3)
		assert.Equal(t, "Archive", categories[0].(map[string]interface{})["name"])
		assert.Equal(t, "Personal", categories[1].(map[string]interface{})["name"])
		assert.Equal(t, "Work", categories[2].(map[string]interface{})["name"])
	})
}

func TestCreateCategory(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "POST", "/api/categories", token, fiber.Map{
			"name":        "Work",
			"description": "Work related items",
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		category := body["category"].(map[string]interface{})
		assert.Equal(t, "Work", category["name"])
		assert.Equal(t, "Work related items", category["description"])
	})

	t.Run("duplicate name", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "POST", "/api/categories", token, fiber.Map{"name": "Work"})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
		resp.Body.Close()

		resp = env.request(t, "POST", "/api/categories", token, fiber.Map{"name": "Work"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Category already exists", body["error"])
	})

	t.Run("missing name", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "POST", "/api/categories", token, fiber.Map{"description": "nameless"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires authentication", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.request(t, "POST", "/api/categories", "", fiber.Map{"name": "Work"})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListItems(t *testing.T) {
	t.Run("newest first", func(t *testing.T) {
		env := newTestEnv(t)
		user, token := env.createUser(t, "a@x.com", "abc")

		older := Item{Title: "older", Status: "active", OwnerID: user.ID,
			CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)}
		newer := Item{Title: "newer", Status: "active", OwnerID: user.ID,
			CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)}
		require.NoError(t, env.db.Create(&older).Error)
		require.NoError(t, env.db.Create(&newer).Error)

		resp := env.request(t, "GET", "/api/items", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		list := body["items"].([]interface{})
		require.Len(t, list, 2)
		assert.Equal(t, "newer", list[0].(map[string]interface{})["title"])
		assert.Equal(t, "older", list[1].(map[string]interface{})["title"])
	})

	t.Run("only own items", func(t *testing.T) {
		env := newTestEnv(t)
		user, token := env.createUser(t, "a@x.com", "abc")
		other, _ := env.createUser(t, "other@x.com", "otheruser")

		require.NoError(t, env.db.Create(&Item{Title: "mine", Status: "active", OwnerID: user.ID}).Error)
		require.NoError(t, env.db.Create(&Item{Title: "theirs", Status: "active", OwnerID: other.ID}).Error)

		resp := env.request(t, "GET", "/api/items", token, nil)
		body := decodeBody(t, resp)
		list := body["items"].([]interface{})
		require.Len(t, list, 1)
		assert.Equal(t, "mine", list[0].(map[string]interface{})["title"])
	})

	t.Run("requires authentication", func(t *testing.T) {
		env := newTestEnv(t)
		resp := env.request(t, "GET", "/api/items", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestCreateItem(t *testing.T) {
	t.Run("minimal payload applies defaults", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "POST", "/api/items", token, fiber.Map{"title": "New Item"})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		item := body["item"].(map[string]interface{})
		assert.Equal(t, "New Item", item["title"])
		assert.Equal(t, "active", item["status"])
		assert.Nil(t, item["category"])
	})

	t.Run("with category", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		category := Category{Name: "Work"}
		require.NoError(t, env.db.Create(&category).Error)

		resp := env.request(t, "POST", "/api/items", token, fiber.Map{
			"title":       "Categorized",
			"category_id": category.ID,
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		item := body["item"].(map[string]interface{})
		got := item["category"].(map[string]interface{})
		assert.Equal(t, "Work", got["name"])
	})

	t.Run("unknown category", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "POST", "/api/items", token, fiber.Map{
			"title":       "Orphan",
			"category_id": 9999,
		})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Category not found", body["error"])
	})

	t.Run("invalid status", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "POST", "/api/items", token, fiber.Map{"title": "Test", "status": "bogus"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing title", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "POST", "/api/items", token, fiber.Map{"description": "no title"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetItem(t *testing.T) {
	t.Run("success with owner, no email leak", func(t *testing.T) {
		env := newTestEnv(t)
		user, token := env.createUser(t, "a@x.com", "testuser")

		item := Item{Title: "Test Item", Status: "active", OwnerID: user.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "GET", "/api/items/1", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		data := body["item"].(map[string]interface{})
		assert.Equal(t, "Test Item", data["title"])

		owner := data["owner"].(map[string]interface{})
		assert.Equal(t, "testuser", owner["username"])
		_, hasEmail := owner["email"]
		assert.False(t, hasEmail, "owner must not expose email")
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "GET", "/api/items/9999", token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Item not found", body["error"])
	})

	t.Run("wrong owner gets 403", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")
		other, _ := env.createUser(t, "other@x.com", "otheruser")

		item := Item{Title: "Theirs", Status: "active", OwnerID: other.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "GET", "/api/items/1", token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Unauthorized", body["error"])
	})
}

func TestUpdateItem(t *testing.T) {
	t.Run("partial update leaves other fields", func(t *testing.T) {
		env := newTestEnv(t)
		user, token := env.createUser(t, "a@x.com", "abc")

		desc := "Original desc"
		item := Item{Title: "Original", Description: &desc, Status: "active", OwnerID: user.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "PATCH", "/api/items/1", token, fiber.Map{"status": "archived"})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		data := body["item"].(map[string]interface{})
		assert.Equal(t, "Original", data["title"])
		assert.Equal(t, "Original desc", data["description"])
		assert.Equal(t, "archived", data["status"])
	})

	t.Run("assign category", func(t *testing.T) {
		env := newTestEnv(t)
		user, token := env.createUser(t, "a@x.com", "abc")

		category := Category{Name: "Work"}
		require.NoError(t, env.db.Create(&category).Error)
		item := Item{Title: "Test", Status: "active", OwnerID: user.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "PATCH", "/api/items/1", token, fiber.Map{"category_id": category.ID})
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		got := body["item"].(map[string]interface{})["category"].(map[string]interface{})
		assert.Equal(t, "Work", got["name"])
	})

	t.Run("unknown category", func(t *testing.T) {
		env := newTestEnv(t)
		user, token := env.createUser(t, "a@x.com", "abc")

		item := Item{Title: "Test", Status: "active", OwnerID: user.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "PATCH", "/api/items/1", token, fiber.Map{"category_id": 9999})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("wrong owner", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")
		other, _ := env.createUser(t, "other@x.com", "otheruser")

		item := Item{Title: "Theirs", Status: "active", OwnerID: other.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "PATCH", "/api/items/1", token, fiber.Map{"title": "Hacked!"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

func TestDeleteItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		env := newTestEnv(t)
		user, token := env.createUser(t, "a@x.com", "abc")

		item := Item{Title: "Doomed", Status: "active", OwnerID: user.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "DELETE", "/api/items/1", token, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Contains(t, body["message"], "deleted successfully")

		var count int64
		env.db.Model(&Item{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")

		resp := env.request(t, "DELETE", "/api/items/9999", token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	t.Run("wrong owner leaves the row", func(t *testing.T) {
		env := newTestEnv(t)
		_, token := env.createUser(t, "a@x.com", "abc")
		other, _ := env.createUser(t, "other@x.com", "otheruser")

		item := Item{Title: "Theirs", Status: "active", OwnerID: other.ID}
		require.NoError(t, env.db.Create(&item).Error)

		resp := env.request(t, "DELETE", "/api/items/1", token, nil)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var count int64
		env.db.Model(&Item{}).Count(&count)
		assert.EqualValues(t, 1, count)
	})
}
