package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/thesavant42/repotablo/internal/cli"
	"github.com/thesavant42/repotablo/internal/ui"
)

func main() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
