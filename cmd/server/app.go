package main

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/dmelo/academia-app/internal/server"
)

// NewApp bundles the full route tree; end-to-end tests drive it directly.
func NewApp(dbConn *gorm.DB) http.Handler {
	return server.NewRouter(dbConn)
}
