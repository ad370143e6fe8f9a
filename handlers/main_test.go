package handlers_test

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YousefBawaliz/teacher-dashboard-backend/database"
	"github.com/YousefBawaliz/teacher-dashboard-backend/middleware"
	"github.com/YousefBawaliz/teacher-dashboard-backend/models"
	"github.com/YousefBawaliz/teacher-dashboard-backend/routes"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testPassword is the plaintext credential for every fixture user.
const testPassword = "password"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.Course{},
		&models.ClassCourse{},
		&models.ClassStudent{},
	))
	database.DB = db

	middleware.InitSessionStore()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"message": message,
			})
		},
	})
	routes.AuthRoutes(app)
	routes.ClassRoutes(app)
	routes.CourseRoutes(app)
	routes.StudentRoutes(app)
	return app
}

func createUser(t *testing.T, role, name, email string) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{Email: email, Password: string(hash), Name: name, Role: role}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

// login authenticates through the real endpoint and returns the session
// cookies for follow-up requests.
func login(t *testing.T, app *fiber.App, email string) []*http.Cookie {
	t.Helper()

	resp, _ := doRequest(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"email":    email,
		"password": testPassword,
	}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotEmpty(t, resp.Cookies())
	return resp.Cookies()
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, cookies []*http.Cookie) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

// dataMap digs the "data" object out of an envelope.
func dataMap(t *testing.T, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok, "expected data object, got %v", payload["data"])
	return data
}

func idsOf(items []interface{}, key string) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		m := item.(map[string]interface{})
		ids = append(ids, uint(m[key].(float64)))
	}
	return ids
}
