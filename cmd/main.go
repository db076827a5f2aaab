package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discussion_board/internal/handlers"
	"discussion_board/internal/logger"
	"discussion_board/internal/repository"
	"discussion_board/internal/server"
	"discussion_board/internal/service"

	"github.com/spf13/viper"
)

const defaultTokenTTLDays = 30

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// attachment storage
	images, err := service.NewDiskImageStore(uploadsDir())
	if err != nil {
		log.Fatalw("failed to init image store", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, tokenConfig(log), images)
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	return viper.ReadInConfig()
}

// tokenConfig builds the immutable token settings passed to the auth service.
// The signing secret is read once here and never from global state again.
func tokenConfig(log *logger.Logger) service.TokenConfig {
	key := viper.GetString("auth.signing_key")
	if key == "" {
		log.Fatalw("auth.signing_key must be set in config")
	}
	days := viper.GetInt("auth.token_ttl_days")
	if days <= 0 {
		days = defaultTokenTTLDays
	}
	return service.TokenConfig{
		SigningKey: key,
		TokenTTL:   time.Duration(days) * 24 * time.Hour,
	}
}

func uploadsDir() string {
	dir := viper.GetString("uploads.dir")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
