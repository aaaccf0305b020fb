package main

import (
	"log/slog"
	"os"

	_ "github.com/nightowllabs/taskhub/api/docs"
	"github.com/nightowllabs/taskhub/internal/taskhub/app"
)

// version is overridden at build time via -ldflags.
var version = "dev"

//	@title			TaskHub API
//	@version		1.0
//	@description	Task tracking backend: users create, assign, and query tasks by status, priority, and due date.
//	@BasePath		/
func main() {
	application, err := app.New(version)
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application exited", "err", err)
		os.Exit(1)
	}
}
