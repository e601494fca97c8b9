package database

import (
	"fmt"
	"os"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"quickpay-backend/models"
)

// Connect opens the backing database. There is no durable persistence: the
// default DSN is an in-memory sqlite database that lives and dies with the
// process. DATABASE_DSN can point at a file for local poking around.
func Connect() (*gorm.DB, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "file::memory:?cache=shared"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Invoice{},
		&models.InvoiceLineItem{},
		&models.Notification{},
		&models.IdempotencyKey{},
	)
}

// Seed loads the demo account and starter data on an empty database. It is
// idempotent; a non-empty table is left alone.
func Seed(db *gorm.DB) error {
	var users int64
	db.Model(&models.User{}).Count(&users)
	if users == 0 {
		demo := models.User{
			FirstName: "Demo",
			LastName:  "User",
			Email:     "user@example.com",
		}
		demo.SetPassword("password123")
		if err := db.Create(&demo).Error; err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
	}

	var clients int64
	db.Model(&models.Client{}).Count(&clients)
	if clients == 0 {
		starter := []models.Client{
			{Name: "Acme Ltd", Email: "contact@acme.com", Active: true},
			{Name: "BlueTech", Email: "hello@bluetech.com", Active: true},
			{Name: "Nova Corp", Email: "info@nova.com", Active: true},
		}
		if err := db.Create(&starter).Error; err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
	}

	var invoices int64
	db.Model(&models.Invoice{}).Count(&invoices)
	if invoices == 0 {
		if err := db.Create(seedInvoices()).Error; err != nil {
			return fmt.Errorf("seed invoices: %w", err)
		}
	}

	var notifications int64
	db.Model(&models.Notification{}).Count(&notifications)
	if notifications == 0 {
		seed := []models.Notification{
			{
				Title:     "New Invoice",
				Message:   "You have a new invoice from Acme Inc.",
				Timestamp: time.Now(),
			},
			{
				Title:     "Payment Received",
				Message:   "Payment of KSh 1,200 received from John Smith",
				Timestamp: time.Now().Add(-time.Hour),
			},
		}
		if err := db.Create(&seed).Error; err != nil {
			return fmt.Errorf("seed notifications: %w", err)
		}
	}

	return nil
}

func seedInvoices() []models.Invoice {
	mk := func(id, client string, status models.InvoiceStatus, date, due string, items []models.InvoiceLineItem) models.Invoice {
		return models.Invoice{
			ID:      id,
			Client:  client,
			Items:   items,
			Amount:  models.ComputeTotal(items),
			Status:  status,
			Date:    date,
			DueDate: due,
		}
	}

	out := []models.Invoice{
		mk("QP-2045", "Acme Ltd", models.StatusPaid, "2026-01-10", "2026-02-10", []models.InvoiceLineItem{
			{Description: "Website Redesign", Quantity: 1, UnitPrice: 1000},
			{Description: "SEO Audit", Quantity: 1, UnitPrice: 200},
		}),
		mk("QP-2046", "BlueTech", models.StatusPending, "2026-01-12", "2026-02-12", []models.InvoiceLineItem{
			{Description: "Mobile App Development", Quantity: 1, UnitPrice: 500},
			{Description: "API Integration", Quantity: 1, UnitPrice: 120},
		}),
		mk("QP-2047", "Nova Corp", models.StatusOverdue, "2026-01-14", "2026-01-31", []models.InvoiceLineItem{
			{Description: "E-commerce Setup", Quantity: 1, UnitPrice: 800},
			{Description: "Payment Gateway", Quantity: 1, UnitPrice: 180},
		}),
	}

	cycle := []models.InvoiceStatus{models.StatusPaid, models.StatusPending, models.StatusOverdue}
	for i := 0; i < 15; i++ {
		out = append(out, mk(
			fmt.Sprintf("QP-%d", 2048+i),
			fmt.Sprintf("Client %d", i+1),
			cycle[i%3],
			fmt.Sprintf("2026-01-%02d", 15+(i%15)),
			fmt.Sprintf("2026-02-%02d", 15+(i%15)),
			[]models.InvoiceLineItem{
				{Description: fmt.Sprintf("Service %d", i+1), Quantity: 1, UnitPrice: float64(400 + i*50)},
				{Description: fmt.Sprintf("Additional Service %d", i+1), Quantity: 1, UnitPrice: float64(100 + i*10)},
			},
		))
	}
	return out
}
