package controllers

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"quickpay-backend/logger"
	"quickpay-backend/store"
)

// Controllers bundles the HTTP handlers with their injected dependencies.
// There are no package-level globals: the store and DB are wired in main.
type Controllers struct {
	DB    *gorm.DB
	Store *store.Store
	log   zerolog.Logger
}

func New(db *gorm.DB, st *store.Store) *Controllers {
	return &Controllers{
		DB:    db,
		Store: st,
		log:   logger.WithComponent("http"),
	}
}
