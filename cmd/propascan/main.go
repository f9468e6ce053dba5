package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/propascan/propascan/internal/cli"
)

func main() {
	// .env is optional; deployments normally use real environment variables.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
