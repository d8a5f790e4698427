package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/peerlearn/peerlearn-backend/internal/config"
	"github.com/peerlearn/peerlearn-backend/internal/handlers"
	"github.com/peerlearn/peerlearn-backend/internal/middleware"
	"github.com/peerlearn/peerlearn-backend/internal/routes"
	"github.com/peerlearn/peerlearn-backend/internal/storage"
	"github.com/peerlearn/peerlearn-backend/internal/store"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	// Open the persistence backend
	var backend storage.Backend
	var redisBackend *storage.Redis
	switch cfg.StorageBackend {
	case "memory":
		backend = storage.NewMemory()
		log.Println("⚠️  Using in-memory storage: nothing survives a restart")
	case "file":
		backend, err = storage.OpenFile(cfg.DataFile)
		if err != nil {
			log.Fatal("Failed to open data file:", err)
		}
		log.Printf("✅ Using file storage at %s", cfg.DataFile)
	case "redis":
		log.Printf("Connecting to Redis...")
		redisBackend, err = storage.OpenRedis(cfg.RedisURI)
		if err != nil {
			log.Fatal("Failed to connect to Redis:", err)
		}
		backend = redisBackend
		log.Println("✅ Connected to Redis")
	case "mongo":
		log.Printf("Connecting to MongoDB...")
		backend, err = storage.OpenMongo(cfg.MongoURI)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		log.Println("✅ Connected to MongoDB")
	default:
		log.Fatalf("Unknown STORAGE_BACKEND %q (want memory, file, redis or mongo)", cfg.StorageBackend)
	}
	defer backend.Close()

	// Build the state store
	var opts []store.Option
	if !cfg.IsProduction() && cfg.DevVerificationCode != "" {
		opts = append(opts, store.WithDevCode(cfg.DevVerificationCode))
		log.Printf("⚠️  Development verification code enabled")
	}
	st := store.New(backend, opts...)
	h := handlers.New(st)

	// Setup router
	r := chi.NewRouter()

	// Custom CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → per-IP + verification rate limiting,
	// plus the shared Redis limiter when Redis holds the data anyway
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		if redisBackend != nil {
			r.Use(middleware.RedisRateLimit(redisBackend.Client()))
		}
		log.Println("✅ Production security enabled (security headers, per-IP + verification rate limiting)")
	}

	// Health check (no rate limit)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Setup routes
	routes.SetupRoutes(r, h)

	log.Printf("🚀 PeerLearn backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
