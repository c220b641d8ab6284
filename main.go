package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/questlog/cmd"
)

func main() {
	// Optional .env for local development.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
