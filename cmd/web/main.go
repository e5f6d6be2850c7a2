package main

import (
	"log"

	"github.com/myproparti-blip/My-pro-backend/internal/app"
)

// @title My Pro Backend API
// @version 1.0
// @description REST API for the property marketplace: OTP auth, listings, agent and consultant directories, moderation and realtime updates.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
