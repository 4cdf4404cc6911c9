// seed/main.go
package main

import (
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lingo-leap/lingo_api/seed/seeders"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var (
		seedType = flag.String("type", "all", "Type of seeding: all, lessons, quests, quizzes, admin")
		help     = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mainSeeder := seeders.NewMainSeeder(db)

	switch *seedType {
	case "all":
		log.Println("Running complete database seeding...")
		if err := mainSeeder.SeedAll(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	case "lessons":
		if err := mainSeeder.SeedLessonsOnly(); err != nil {
			log.Fatalf("Failed to seed lessons: %v", err)
		}
	case "quests":
		if err := mainSeeder.SeedQuestsOnly(); err != nil {
			log.Fatalf("Failed to seed quests: %v", err)
		}
	case "quizzes":
		if err := mainSeeder.SeedQuizzesOnly(); err != nil {
			log.Fatalf("Failed to seed quizzes: %v", err)
		}
	case "admin":
		if err := mainSeeder.SeedAdminOnly(); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
	default:
		log.Fatalf("Unknown seed type: %s. Use 'all', 'lessons', 'quests', 'quizzes', or 'admin'", *seedType)
	}
}

func connect() (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	}

	if os.Getenv("DB_DRIVER") == "sqlite" {
		dbPath := os.Getenv("DATABASE_URL")
		if dbPath == "" {
			dbPath = "lingo_api.db"
		}
		return gorm.Open(sqlite.Open(dbPath), gormCfg)
	}

	dsn := os.Getenv("DATABASE_URL")
	return gorm.Open(postgres.Open(dsn), gormCfg)
}

func showHelp() {
	log.Println(`Database seeder

Usage:
  go run ./seed -type=all        Seed everything
  go run ./seed -type=lessons    Seed sample lessons only
  go run ./seed -type=quests     Seed quest definitions only
  go run ./seed -type=quizzes    Seed daily quizzes only
  go run ./seed -type=admin      Seed the default admin user only`)
}
