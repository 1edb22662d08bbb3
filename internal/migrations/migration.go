package migrations

import (
	"log"

	"eventeasy/internal/models"
	"eventeasy/internal/repository"

	"gorm.io/gorm"
)

// RunMigrations migrates the schema and seeds default catalog data. It is
// safe to run repeatedly; existing rows are left alone.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.UserAccount{},
		&models.Category{},
		&models.Service{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}

	if err := seedDefaultCategories(db); err != nil {
		log.Printf("Warning: Failed to seed default categories: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func seedDefaultCategories(db *gorm.DB) error {
	categoryRepo := repository.NewCategoryRepository(db)

	existing, err := categoryRepo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Categories already seeded")
		return nil
	}

	log.Println("Seeding default categories...")
	defaults := []models.Category{
		{Name: "Photography", Description: "Event photography packages"},
		{Name: "Videography", Description: "Event videography and coverage"},
		{Name: "Catering", Description: "Food and beverage services"},
		{Name: "Venues", Description: "Event venues and grounds"},
		{Name: "Entertainment", Description: "DJs, MCs and live bands"},
	}
	for i := range defaults {
		if err := categoryRepo.Create(&defaults[i]); err != nil {
			return err
		}
	}

	log.Println("Default categories created successfully!")
	return nil
}
