package main

import (
	"log"
	"net/http"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Config is loaded from the environment at startup. DATABASE_PATH is
// optional: with it the delivery log survives restarts, without it the log
// lives in memory like the rest of the state.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	BaseURL      string `env:"BASE_URL" envDefault:"http://localhost"`
	DatabasePath string `env:"DATABASE_PATH"`
	DefaultOvers int    `env:"DEFAULT_OVERS" envDefault:"20"`
}

var (
	appConfig     Config
	deliveryStore DeliveryStore
)

func newRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", homePage).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", healthCheck).Methods("GET")
	api.HandleFunc("/teams", getAllTeams).Methods("GET")
	api.HandleFunc("/teams/{id:[0-9]+}", getTeam).Methods("GET")
	api.HandleFunc("/players", getAllPlayers).Methods("GET")
	api.HandleFunc("/players/{id:[0-9]+}", getPlayer).Methods("GET")

	api.HandleFunc("/matches", getAllMatches).Methods("GET")
	api.HandleFunc("/matches", createMatch).Methods("POST")
	api.HandleFunc("/matches/{id:[0-9]+}", getMatch).Methods("GET")

	api.HandleFunc("/matches/{id:[0-9]+}/deliveries", recordDelivery).Methods("POST")
	api.HandleFunc("/matches/{id:[0-9]+}/deliveries", listDeliveries).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/scorecard", getScorecard).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/innings/close", closeInnings).Methods("POST")
	api.HandleFunc("/matches/{id:[0-9]+}/result", getMatchResult).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/mom", suggestMoM).Methods("GET")
	api.HandleFunc("/matches/{id:[0-9]+}/mom", confirmMoM).Methods("POST")

	api.HandleFunc("/stats", getGlobalStats).Methods("GET")
	api.HandleFunc("/search", searchAPI).Methods("GET")

	return r
}

func main() {
	if err := env.Parse(&appConfig); err != nil {
		log.Fatalf("❌ Failed to parse config: %v", err)
	}

	startTime = time.Now()

	if appConfig.DatabasePath != "" {
		store, err := openSQLiteDeliveryStore(appConfig.DatabasePath)
		if err != nil {
			log.Fatalf("❌ Failed to open delivery store at %s: %v", appConfig.DatabasePath, err)
		}
		deliveryStore = store
		log.Printf("💾 Delivery log persisted at %s", appConfig.DatabasePath)
	} else {
		deliveryStore = newMemoryDeliveryStore()
		log.Printf("💾 Delivery log in memory (set DATABASE_PATH to persist)")
	}
	defer deliveryStore.Close()

	initializeData()

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(newRouter())

	log.Printf("🏏 CrickPulse API v%s starting on port %s", version, appConfig.Port)
	log.Printf("📊 Seeded %d teams and %d players", len(teams), len(players))
	log.Printf("🏠 Homepage: %s:%s", appConfig.BaseURL, appConfig.Port)
	log.Printf("🏥 Health check: %s:%s/health", appConfig.BaseURL, appConfig.Port)

	if err := http.ListenAndServe(":"+appConfig.Port, handler); err != nil {
		log.Fatalf("❌ Server failed to start: %v", err)
	}
}
