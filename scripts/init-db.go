package main

import (
	"fmt"
	"log"

	"eventeasy/internal/config"
	"eventeasy/internal/database"
	"eventeasy/internal/migrations"
	"eventeasy/internal/models"
	"eventeasy/internal/repository"
	"eventeasy/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.OrderItem{},
		&models.Order{},
		&models.Service{},
		&models.Category{},
		&models.UserAccount{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	// Recreate tables and seed default categories
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Create demo accounts
	fmt.Println("Creating demo accounts...")
	userRepo := repository.NewUserRepository(db)
	userService := services.NewUserService(userRepo)

	demoClient, err := userService.Register(services.RegisterInput{
		Email:     "client@eventeasykenya.com",
		Password:  "client123!",
		FirstName: "Demo",
		LastName:  "Client",
		Telephone: "0712345678",
		Location:  "Nairobi",
		Role:      string(models.RoleClient),
	})
	if err != nil {
		log.Printf("Warning: Failed to create demo client: %v", err)
	} else {
		fmt.Printf("Demo client created: %s\n", demoClient.Email)
	}

	demoProvider, err := userService.Register(services.RegisterInput{
		Email:     "provider@eventeasykenya.com",
		Password:  "provider123!",
		FirstName: "Demo",
		LastName:  "Provider",
		Telephone: "0787654321",
		Location:  "Nairobi",
		Role:      string(models.RoleProvider),
	})
	if err != nil {
		log.Printf("Warning: Failed to create demo provider: %v", err)
	} else {
		fmt.Printf("Demo provider created: %s\n", demoProvider.Email)
	}

	fmt.Println("Database initialization completed successfully!")
}
