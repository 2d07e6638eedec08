package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"pingly_server/config"
	"pingly_server/fixtures"
	"pingly_server/routes"
	"pingly_server/services"
	"pingly_server/socket"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Initializing AWS clients...")
	awsCfg, err := services.LoadAWSConfig(context.Background(), cfg.AWSRegion)
	if err != nil {
		log.Fatalf("%v", err)
	}
	images := services.NewImageService(s3.NewFromConfig(awsCfg), cfg.S3BucketName)

	// Event sinks: log every event, relay to sockets, optionally persist
	hub := socket.NewHub()
	sinks := services.MultiSink{services.LogSink{}, hub}
	var history *services.DynamoSink
	if cfg.DynamoEnabled {
		history = &services.DynamoSink{Dynamo: services.NewDynamoService(awsCfg)}
		sinks = append(sinks, history)
		log.Println("DynamoDB persistence enabled.")
	}

	sessions := services.NewSessionService(services.SessionOptions{
		Tokens:      services.NewTokenService(cfg.JWTSecret, cfg.SessionTTL, nil),
		EmailDomain: cfg.EmailDomain,
		SettleDelay: cfg.SettleDelay,
		Seed:        func() services.Seed { return fixtures.Seed(time.Now()) },
		Runtime:     services.Runtime{Sink: sinks},
	})
	defer sessions.Close()
	hub.Attach(sessions)

	go func() {
		if err := hub.Server.Serve(); err != nil {
			log.Fatalf("Socket.IO server stopped: %v", err)
		}
	}()
	defer hub.Server.Close()

	// Initialize the router
	r := mux.NewRouter()

	routes.RegisterRoutes(r)
	routes.RegisterSessionRoutes(r, sessions)
	routes.RegisterDeckRoutes(r, sessions)
	routes.RegisterMatchRoutes(r, sessions, time.Now)
	routes.RegisterSocialRoutes(r, sessions, time.Now)
	routes.RegisterProfessionalRoutes(r, sessions)
	routes.RegisterS3Routes(r, images)
	if history != nil {
		routes.RegisterHistoryRoutes(r, sessions, history)
	}
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/socket.io/").Handler(hub.Server)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler))
}
