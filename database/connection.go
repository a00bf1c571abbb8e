package database

import (
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the PostgreSQL connection and stores it in DB.
// A full DATABASE_URL wins; otherwise the DSN is assembled from
// DB_* variables, with Cloud SQL unix sockets used when
// INSTANCE_CONNECTION_NAME is set.
func Connect() {
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dbUser := getenvDefault("DB_USER", "postgres")
		dbPass := os.Getenv("DB_PASS")
		dbName := getenvDefault("DB_NAME", "sevasetu")
		dbHost := getenvDefault("DB_HOST", "localhost")
		dbPort := getenvDefault("DB_PORT", "5432")

		if instance := os.Getenv("INSTANCE_CONNECTION_NAME"); instance != "" {
			// Cloud Run: connect via the Cloud SQL unix socket
			dsn = fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
				instance, dbUser, dbPass, dbName)
			log.Printf("Connecting to Cloud SQL via socket: %s", instance)
		} else {
			dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
				dbHost, dbUser, dbPass, dbName, dbPort)
			log.Printf("Connecting to PostgreSQL at %s:%s", dbHost, dbPort)
		}
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		panic(err)
	}

	log.Println("✅ Database connected successfully!")
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
