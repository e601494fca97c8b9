package middlewares_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quickpay-backend/database"
	"quickpay-backend/middlewares"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET_KEY", "test-secret")
	os.Exit(m.Run())
}

func newIdempotencyApp(t *testing.T) (*fiber.App, *int64) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	var handlerRuns int64
	app := fiber.New(fiber.Config{ErrorHandler: middlewares.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", "user-1")
		return c.Next()
	})
	app.Use(middlewares.Idempotency(db))
	app.Post("/thing", func(c *fiber.Ctx) error {
		n := atomic.AddInt64(&handlerRuns, 1)
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"run": n})
	})
	return app, &handlerRuns
}

func post(t *testing.T, app *fiber.App, key, body string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/thing", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	app, runs := newIdempotencyApp(t)

	status1, body1 := post(t, app, "key-1", `{"a":1}`)
	status2, body2 := post(t, app, "key-1", `{"a":1}`)

	assert.Equal(t, fiber.StatusCreated, status1)
	assert.Equal(t, status1, status2)
	assert.Equal(t, body1, body2)
	assert.EqualValues(t, 1, *runs)
}

func TestIdempotencyKeyReuseConflicts(t *testing.T) {
	app, _ := newIdempotencyApp(t)

	status, _ := post(t, app, "key-1", `{"a":1}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, _ = post(t, app, "key-1", `{"a":2}`)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestIdempotencyWithoutKeyRunsEveryTime(t *testing.T) {
	app, runs := newIdempotencyApp(t)

	post(t, app, "", `{"a":1}`)
	post(t, app, "", `{"a":1}`)
	assert.EqualValues(t, 2, *runs)
}
