package main

import (
	"log"

	"github.com/jamshiddins/vendbot/cmd/config"
	migration "github.com/jamshiddins/vendbot/cmd/database/migrate"
	"github.com/jamshiddins/vendbot/internal/utils"
)

func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	if err := app.Listen(utils.GetConfig("APP_URL")); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
