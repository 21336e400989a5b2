package controllers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/opscheduler/opscheduler-api/db"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB swaps the package-level DB handle for a sqlmock-backed one.
// SkipDefaultTransaction keeps single writes free of BEGIN/COMMIT noise;
// explicit transactions in the code under test still show up.
func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	previous := db.DB
	db.DB = gdb

	cleanup := func() {
		db.DB = previous
		conn.Close()
	}

	return mock, cleanup
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, jsonUnmarshal(readAll(t, resp), &body))
	return body
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return raw
}

var jsonUnmarshal = json.Unmarshal

// asUser fakes the auth middleware for handlers that read the caller's
// identity from locals.
func asUser(userID uint, handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return handler(c)
	}
}
