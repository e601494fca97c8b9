package controllers_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"quickpay-backend/controllers"
	"quickpay-backend/models"
	"quickpay-backend/payments"
	"quickpay-backend/store"
)

func newClientApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	app, db := newTestApp(t)

	st := store.New(db, &payments.MockGateway{})
	ctl := controllers.New(db, st)
	app.Post("/api/clients", ctl.CreateClient)
	app.Get("/api/clients", ctl.GetClients)
	app.Get("/api/clients/:id", ctl.GetClient)
	app.Patch("/api/clients/:id", ctl.UpdateClient)
	return app, db
}

func TestCreateClientEndpoint(t *testing.T) {
	app, _ := newClientApp(t)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/clients",
		map[string]interface{}{"name": "Acme Ltd", "email": "billing@acme.example"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Acme Ltd", body["name"])
}

func TestCreateClientRejectsBadEmail(t *testing.T) {
	app, _ := newClientApp(t)

	resp, _ := doJSON(t, app, fiber.MethodPost, "/api/clients",
		map[string]interface{}{"name": "Acme Ltd", "email": "not-an-email"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestGetClientsIncludesInvoiceRollup(t *testing.T) {
	app, db := newClientApp(t)
	require.NoError(t, db.Create(&models.Client{Name: "Acme Ltd", Email: "a@acme.example", Active: true}).Error)

	for i := 0; i < 2; i++ {
		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/invoice", draftBody())
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, body := doJSON(t, app, fiber.MethodGet, "/api/clients", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	clients := body["clients"].([]interface{})
	require.Len(t, clients, 1)
	first := clients[0].(map[string]interface{})
	assert.Equal(t, 2.0, first["totalInvoices"])
}

func TestUpdateClientEndpoint(t *testing.T) {
	app, db := newClientApp(t)
	client := models.Client{Name: "Nova Corp", Email: "old@nova.example", Active: true}
	require.NoError(t, db.Create(&client).Error)

	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/clients/1",
		map[string]interface{}{"phone": "+254700000000"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "+254700000000", body["phone"])

	resp, _ = doJSON(t, app, fiber.MethodPatch, "/api/clients/999",
		map[string]interface{}{"phone": "x"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
