package dotenv

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const defaultFile = ".env"

// Load fills the environment from ENV_FILE, or from .env when it is unset.
// Variables already present in the environment win. A missing default file is not an error,
// containers get their settings from the orchestrator.
func Load() error {
	file, explicit := os.LookupEnv("ENV_FILE")
	if !explicit {
		file = defaultFile
	}

	if err := godotenv.Load(file); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", file, err)
	}
	return nil
}

// ApplyPortFlag lets -port override PORT for local runs of the HTTP service.
func ApplyPortFlag() error {
	port := flag.String("port", "", "Server port (overrides PORT environment variable)")
	flag.Parse()

	if *port == "" {
		return nil
	}
	if err := os.Setenv("PORT", *port); err != nil {
		return fmt.Errorf("set PORT: %w", err)
	}
	return nil
}
