package controllers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/controllers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func loginApp() *fiber.App {
	app := fiber.New()
	app.Post("/auth/login", controllers.Login)
	app.Post("/auth/register", controllers.Register)
	return app
}

func TestLoginEmptyPasswordMakesNoStoreCalls(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	app := loginApp()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"a@b.com","password":""}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Please fill in both fields.", body["error"])

	// No expectations were registered: any query would have failed the mock.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginInvalidEmailRejectedLocally(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	app := loginApp()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"not-an-email","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid email address.", body["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUnknownEmailAndWrongPasswordShareMessage(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	app := loginApp()

	// Unknown email
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ghost@example.com","password":"pw"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password.", decodeBody(t, resp)["error"])

	// Wrong password for an existing account
	hash, err := bcrypt.GenerateFromPassword([]byte("right-password"), bcrypt.DefaultCost)
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role_id"}).
			AddRow(1, "Ada", "ada@example.com", string(hash), 1))

	req = httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password.", decodeBody(t, resp)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAdminRedirectsToAdminDashboard(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.DefaultCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role_id"}).
			AddRow(1, "Admin", "admin@example.com", string(hash), 1))
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE "roles"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "admin"))

	app := loginApp()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"admin@example.com","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/admin/dashboard", body["redirect"])
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["refreshToken"])

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "admin", user["role"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginWithoutRoleRecordDefaultsToMember(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw123456"), bcrypt.DefaultCost)
	require.NoError(t, err)

	// role_id is zero: no role record was ever written for this identity.
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "password", "role_id"}).
			AddRow(9, "Orphan", "orphan@example.com", string(hash), 0))

	app := loginApp()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{"email":"orphan@example.com","password":"pw123456"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/patient/dashboard", body["redirect"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "member", user["role"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterCreatesIdentityRoleAndProfileTogether(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "patient"))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectCommit()

	app := loginApp()
	payload := `{"name":"New Patient","email":"new@example.com","phone":"555-0101","dob":"1990-04-01","address":"12 Elm St","password":"pw123456"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "/login", body["redirect"])
	patient := body["patient"].(map[string]interface{})
	assert.Equal(t, float64(11), patient["auth_uid"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRollsBackIdentityWhenProfileWriteFails(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "roles" WHERE name = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "patient"))
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	app := loginApp()
	payload := `{"name":"Half Done","email":"half@example.com","password":"pw123456"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	// The rollback expectation proves the identity write was undone.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(3, "taken@example.com"))

	app := loginApp()
	payload := `{"name":"Dup","email":"taken@example.com","password":"pw123456"}`
	req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
