package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"inferkit/adapters/postgres"
	"inferkit/domain/core"
	"inferkit/internal/testkit"
	"inferkit/ports"
)

// The history API serves recorded analyses read-only; writes only happen
// through the calculator itself.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	var reader ports.LedgerReaderPort
	if url := os.Getenv("DATABASE_URL"); url != "" {
		ledger, err := postgres.Connect(url)
		if err != nil {
			log.Fatalf("Failed to connect to ledger database: %v", err)
		}
		defer ledger.Close()
		reader = ledger
	} else {
		log.Println("DATABASE_URL not set, serving an empty in-memory ledger")
		reader = testkit.NewInMemoryLedger()
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/artifacts", handleListArtifacts(reader))
	router.Get("/artifacts/{id}", handleGetArtifact(reader))
	router.Get("/runs/{id}/artifacts", handleRunArtifacts(reader))

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8081"
	}
	log.Printf("History API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}

func handleListArtifacts(reader ports.LedgerReaderPort) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters := ports.ArtifactFilters{Limit: 50}
		if kind := r.URL.Query().Get("kind"); kind != "" {
			k := core.ArtifactKind(kind)
			filters.Kind = &k
		}
		if limit := r.URL.Query().Get("limit"); limit != "" {
			if n, err := strconv.Atoi(limit); err == nil && n > 0 {
				filters.Limit = n
			}
		}

		artifacts, err := reader.ListArtifacts(r.Context(), filters)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, artifacts)
	}
}

func handleGetArtifact(reader ports.LedgerReaderPort) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifact, err := reader.GetArtifact(r.Context(), core.ID(chi.URLParam(r, "id")))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, artifact)
	}
}

func handleRunArtifacts(reader ports.LedgerReaderPort) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artifacts, err := reader.GetArtifactsByRun(r.Context(), core.RunID(chi.URLParam(r, "id")))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, artifacts)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if core.IsNotFoundError(err) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
