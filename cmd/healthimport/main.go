// In file: cmd/healthimport/main.go

// Command healthimport loads health samples, workouts and authorization
// grants from YAML exports into the Redis store the health tool reads. The
// same files may carry contacts and calendar events.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/dileep-u-k/device-tools/internal/calendar"
	"github.com/dileep-u-k/device-tools/internal/contacts"
	"github.com/dileep-u-k/device-tools/internal/health"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const defaultSourcePath = "./data/health"

// getEnv reads an env var or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found. Relying on environment variables.")
	}
	source := flag.String("source", getEnv("HEALTH_IMPORT_PATH", defaultSourcePath), "YAML file or directory to import")
	flag.Parse()

	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: getEnv("REDIS_ADDR", "localhost:6379")})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	importer := NewImporter(health.NewStore(rdb)).
		WithContacts(contacts.NewStore(rdb)).
		WithEvents(calendar.NewStore(rdb))
	if _, err := importer.Run(ctx, *source); err != nil {
		log.Fatalf("❌ Import failed: %v", err)
	}
}
