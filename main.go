package main

import (
	"context"
	"log"
	"os"

	"libkiosk/app"
	"libkiosk/config"
	"libkiosk/controllers"
	"libkiosk/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	routes.RegisterRoutes(r, application)

	// First boot: default admin, optional demo catalog.
	srv := controllers.GetSrv(application)
	app.EnsureAdmin(context.Background(), application.Config, srv.Repo)
	if application.Config.SeedDemoData {
		app.SeedDemoData(context.Background(), application.Config, srv.Repo)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
