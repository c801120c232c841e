package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/adestefa/satori-tm-legal-system-sub002/internal/cli"
)

func main() {
	// Load .env if present; API keys live in the environment, not config.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
