package handlers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	body := fiber.Map{
		"email":    "new@example.com",
		"password": testPassword,
		"name":     "New Teacher",
		"role":     "teacher",
	}

	resp, payload := doRequest(t, app, fiber.MethodPost, "/api/register", body, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", payload["status"])

	user := payload["user"].(map[string]interface{})
	assert.Equal(t, "New Teacher", user["name"])
	assert.Equal(t, "teacher", user["role"])
	assert.Equal(t, "new@example.com", user["email"])

	// Same email again: conflict, first user untouched.
	resp, payload = doRequest(t, app, fiber.MethodPost, "/api/register", body, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "error", payload["status"])

	cookies := login(t, app, "new@example.com")
	resp, payload = doRequest(t, app, fiber.MethodGet, "/api/user", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "New Teacher", payload["user"].(map[string]interface{})["name"])
}

func TestRegisterValidation(t *testing.T) {
	app := setupApp(t)

	resp, payload := doRequest(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"email":    "short@example.com",
		"password": "short",
		"name":     "Shorty",
		"role":     "student",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "error", payload["status"])

	resp, _ = doRequest(t, app, fiber.MethodPost, "/api/register", fiber.Map{
		"email":    "admin@example.com",
		"password": "password123",
		"name":     "Admin",
		"role":     "admin",
	}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginWrongPassword(t *testing.T) {
	app := setupApp(t)
	createUser(t, "teacher", "Jane Teacher", "jane@example.com")

	resp, payload := doRequest(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"email":    "jane@example.com",
		"password": "wrong-password",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", payload["message"])

	resp, _ = doRequest(t, app, fiber.MethodPost, "/api/login", fiber.Map{
		"email":    "nobody@example.com",
		"password": "password",
	}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginLogoutCycle(t *testing.T) {
	app := setupApp(t)
	createUser(t, "student", "John Student", "john@example.com")

	resp, payload := doRequest(t, app, fiber.MethodGet, "/api/isLoggedIn", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, payload["isAuthenticated"])
	assert.Nil(t, payload["user"])

	cookies := login(t, app, "john@example.com")

	resp, payload = doRequest(t, app, fiber.MethodGet, "/api/isLoggedIn", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["isAuthenticated"])
	assert.Equal(t, "John Student", payload["user"].(map[string]interface{})["name"])

	resp, _ = doRequest(t, app, fiber.MethodPost, "/api/logout", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, payload = doRequest(t, app, fiber.MethodGet, "/api/isLoggedIn", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, payload["isAuthenticated"])
}

func TestProtectedEndpointsRequireSession(t *testing.T) {
	app := setupApp(t)

	resp, payload := doRequest(t, app, fiber.MethodGet, "/api/user", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Authentication required", payload["message"])

	resp, _ = doRequest(t, app, fiber.MethodGet, "/api/classes/", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSeedDatabase(t *testing.T) {
	app := setupApp(t)

	resp, payload := doRequest(t, app, fiber.MethodPost, "/api/seed", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := dataMap(t, payload)
	assert.Equal(t, float64(2), data["teachers"])
	assert.Equal(t, float64(7), data["students"])

	// Second run refuses: the database already has users.
	resp, payload = doRequest(t, app, fiber.MethodPost, "/api/seed", nil, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Database already has users", payload["message"])

	cookies := login(t, app, "teacher@example.com")
	resp, payload = doRequest(t, app, fiber.MethodGet, "/api/user", nil, cookies)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jane Teacher", payload["user"].(map[string]interface{})["name"])
}
