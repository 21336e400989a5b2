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
)

func doctorApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/doctors", controllers.GetAllDoctors)
	app.Get("/api/doctors/:id", controllers.GetDoctor)
	app.Post("/api/doctors", controllers.CreateDoctor)
	app.Put("/api/doctors/:id", controllers.UpdateDoctor)
	app.Delete("/api/doctors/:id", controllers.DeleteDoctor)
	return app
}

func TestCreateDoctorRoundTripsSubmittedFields(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO "doctors"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	app := doctorApp()
	payload := `{"name":"Dr. Lisa Cuddy","specialty":"Endocrinology","phone":"555-0102","email":"cuddy@example.com"}`
	req := httptest.NewRequest("POST", "/api/doctors", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Dr. Lisa Cuddy", body["name"])
	assert.Equal(t, "Endocrinology", body["specialty"])
	assert.Equal(t, "555-0102", body["phone"])
	assert.Equal(t, "cuddy@example.com", body["email"])
	assert.Equal(t, float64(7), body["ID"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDoctorRequiresName(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	app := doctorApp()
	req := httptest.NewRequest("POST", "/api/doctors", strings.NewReader(`{"specialty":"Cardiology"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDoctorStoreFailureIsNotReportedAsMissing(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE "doctors"\."id" = \$1`).
		WillReturnError(assert.AnError)

	app := doctorApp()
	resp, err := app.Test(httptest.NewRequest("GET", "/api/doctors/5", nil))
	require.NoError(t, err)

	// A store outage is a server error, not an absent record.
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to load doctor", decodeBody(t, resp)["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDoctorDoesNotRewriteScheduleSnapshots(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE "doctors"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty"}).
			AddRow(5, "Dr. Gregory House", "Diagnostics"))
	mock.ExpectExec(`UPDATE "doctors" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := doctorApp()
	payload := `{"name":"Dr. G. House","specialty":"Diagnostics","phone":"555-0103","email":"house@example.com"}`
	req := httptest.NewRequest("PUT", "/api/doctors/5", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Only the doctors table was written: schedules keep the name they
	// snapshotted when they were created.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteDoctorThenMissingOnNextFetch(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE "doctors"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(5, "Dr. Gregory House"))
	mock.ExpectExec(`UPDATE "doctors" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	app := doctorApp()
	req := httptest.NewRequest("DELETE", "/api/doctors/5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Next fetch no longer returns the record.
	mock.ExpectQuery(`SELECT \* FROM "doctors" WHERE "doctors"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	req = httptest.NewRequest("GET", "/api/doctors/5", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Doctor details not found.", decodeBody(t, resp)["error"])

	assert.NoError(t, mock.ExpectationsWereMet())
}
