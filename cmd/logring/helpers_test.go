package main

import (
	"os"

	"github.com/rs/zerolog"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
