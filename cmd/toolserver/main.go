// In file: cmd/toolserver/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	// Embedded zone database so the configured time zone works in minimal images.
	_ "time/tzdata"

	"github.com/dileep-u-k/device-tools/internal/calendar"
	"github.com/dileep-u-k/device-tools/internal/contacts"
	"github.com/dileep-u-k/device-tools/internal/health"
	"github.com/dileep-u-k/device-tools/internal/llm"
	"github.com/dileep-u-k/device-tools/internal/metadata"
	"github.com/dileep-u-k/device-tools/internal/reminders"
	"github.com/dileep-u-k/device-tools/internal/search"
	"github.com/dileep-u-k/device-tools/internal/settings"
	"github.com/dileep-u-k/device-tools/internal/tools"
	"github.com/dileep-u-k/device-tools/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// main is the composition root: it loads configuration, builds every
// collaborator, registers the tools and serves them over HTTP.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", defaultConfigPath, "path to config.yaml")
	flag.Parse()

	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Device Tools server | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("❌ FATAL: Could not connect to Redis: %v", err)
	}
	defer rdb.Close()

	exaKey, err := settings.NewStore(rdb).Resolve(ctx, settings.ExaAPIKey, cfg.ExaAPIKey)
	if err != nil {
		log.Printf("⚠️ Could not read persisted search key: %v", err)
	}
	if exaKey == "" {
		log.Println("⚠️ No Exa API key configured; searchWeb will report missingAPIKey.")
	}

	generator, err := llm.New(ctx, cfg.File.Summary.Provider, cfg.SummaryAPIKey(), cfg.File.Summary.Generation)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	defer releaseGenerator(generator)

	toolManager, err := initializeToolManager(cfg, rdb, exaKey, generator)
	if err != nil {
		log.Fatalf("❌ FATAL: %v", err)
	}
	log.Println("✅ All services initialized.")

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	NewToolHandler(toolManager).Register(engine)

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeToolManager creates and registers all available tools.
func initializeToolManager(cfg *AppConfig, rdb *redis.Client, exaKey string, generator llm.TextGenerator) (*tools.ToolManager, error) {
	manager := tools.NewToolManager()
	openMeteo := weather.NewClient(cfg.File.Weather)
	access := settings.NewStore(rdb)

	toolset := []tools.ToolExecutor{
		tools.NewWeatherTool(openMeteo, openMeteo),
		tools.NewLocationTool(openMeteo),
		tools.NewHealthTool(health.NewStore(rdb), tools.HealthConfig{Location: cfg.Location}),
		tools.NewMetadataTool(metadata.NewFetcher(cfg.File.Metadata), generator),
		tools.NewSearchTool(search.NewClient(exaKey, cfg.File.Search), tools.SearchConfig{APIKey: exaKey}),
		tools.NewCalendarTool(calendar.NewStore(rdb), access, tools.CalendarConfig{Location: cfg.Location}),
		tools.NewRemindersTool(reminders.NewStore(rdb), access, tools.RemindersConfig{Location: cfg.Location}),
		tools.NewContactsTool(contacts.NewStore(rdb), access),
	}
	for _, t := range toolset {
		if err := manager.Register(t); err != nil {
			return nil, fmt.Errorf("failed to register tool: %w", err)
		}
	}

	log.Printf("✅ Tool Manager initialized with %d tools.", manager.ToolCount())
	return manager, nil
}

// releaseGenerator closes generators that hold a connection (Gemini).
func releaseGenerator(generator llm.TextGenerator) {
	closer, ok := generator.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		log.Printf("⚠️ Failed to close summary generator: %v", err)
	}
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Tool server is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
