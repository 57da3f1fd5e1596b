package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hs-portal-api/internal/config"
	"github.com/hs-portal-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/hs-portal-api/internal/infrastructure/jwt"
	s3infra "github.com/hs-portal-api/internal/infrastructure/s3"
	"github.com/hs-portal-api/internal/infrastructure/smtp"
	"github.com/hs-portal-api/internal/infrastructure/sns"
	"github.com/hs-portal-api/internal/infrastructure/upstream"
	transporthttp "github.com/hs-portal-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// The JWT provider signs every portal token; there is no anonymous mode.
	jwtProvider, err := jwtinfra.NewProvider(cfg)
	if err != nil {
		log.Fatalf("JWT provider not available: %v", err)
	}

	// S3 store for archived evidence.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS pusher (optional — graceful fallback).
	var pusher sns.Pusher
	if p, err := sns.NewSender(cfg); err == nil {
		pusher = p
	} else {
		log.Printf("WARN: SNS pusher not available: %v", err)
	}

	upstreamClient := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)

	deps := &transporthttp.Deps{
		SessionRepo:      dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		SeenCommentRepo:  dynamo.NewSeenCommentRepo(dynamoClient, cfg.DynamoTables.SeenComments),
		EvidenceRepo:     dynamo.NewEvidenceRepo(dynamoClient, cfg.DynamoTables.Evidence),
		S3Store:          s3Store,
		Upstream:         upstreamClient,
		Mailer:           mailer,
		Pusher:           pusher,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
