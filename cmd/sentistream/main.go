package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ppiankov/sentistream/internal/cli"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
