package migration

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/jamshiddins/vendbot/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.UserRoleAssignment{}); err != nil {
		log.Fatalf("Error migrating user role database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.IngredientType{}); err != nil {
		log.Fatalf("Error migrating ingredient type database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.StockEntry{}); err != nil {
		log.Fatalf("Error migrating stock entry database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Machine{}); err != nil {
		log.Fatalf("Error migrating machine database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Hopper{}); err != nil {
		log.Fatalf("Error migrating hopper database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Operation{}); err != nil {
		log.Fatalf("Error migrating operation database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Photo{}); err != nil {
		log.Fatalf("Error migrating photo database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
