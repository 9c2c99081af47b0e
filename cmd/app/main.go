package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"TaaraAgent/internal/config"
	"TaaraAgent/pkg/armoriq"
	"TaaraAgent/pkg/log"
	"TaaraAgent/pkg/redis"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	appConfig := config.LoadAppConfig()
	verifierConfig := armoriq.ConfigFromEnv()

	options := []config.ServerOption{
		config.WithFiber(config.NewFiber(logger)),
		config.WithLogger(logger),
		config.WithValidator(config.NewValidator()),
		config.WithMiddleware(),
		config.WithPort(appConfig.Port),
		config.WithPolicyFile(appConfig.PolicyFile),
		config.WithVerifier(verifierConfig),
		config.WithEnvironment(appConfig.Environment),
		config.WithAuditBlocked(appConfig.AuditBlocked),
	}
	if appConfig.NeedsDatabase() {
		options = append(options, config.WithDatabase())
	}
	if appConfig.NeedsRedis() {
		options = append(options, config.WithRedisServer(redis.New()))
	}
	options = append(options, config.WithStorage(appConfig))

	server, err := config.NewServer(options...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.WithFields(log.Fields{
		"port":           appConfig.Port,
		"storage":        appConfig.StorageDriver,
		"audit_sink":     appConfig.AuditSink,
		"armoriq":        verifierConfig.Enabled,
		"armoriq_signed": verifierConfig.Secret != "",
	}).Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
