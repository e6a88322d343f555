package main

import (
	"github.com/Catalyst-OTU/GoGo-Transport-Service/internal/app"
)

func main() {
	// Initialize application
	application, err := app.Initialize("")
	if err != nil {
		panic(err)
	}

	// Start server
	app.StartServer(
		application.Config,
		application.Handlers,
		application.Services,
	)
}
