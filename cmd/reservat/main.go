package main

import (
	"github.com/joho/godotenv"

	"github.com/reservat/provider-console/internal/cli"
	"github.com/reservat/provider-console/internal/common/logtrace"
)

func main() {
	// .env is optional; when present it can override RESERVAT_* settings
	_ = godotenv.Load()
	logtrace.InitLogger()
	cli.Execute()
}
