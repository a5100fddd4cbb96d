package main

import (
	"nibash_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// Local development reads .env; deployments set real env vars.
	_ = godotenv.Load()

	app.Run()
}
