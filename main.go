package main

import (
	"log"

	"github.com/joho/godotenv"

	"inferkit/adapters/excel"
	"inferkit/adapters/postgres"
	"inferkit/app"
	"inferkit/internal/config"
	"inferkit/internal/testkit"
	"inferkit/ports"
	"inferkit/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// The ledger records every analysis; without a database it lives in memory.
	var ledger ports.LedgerPort
	if appConfig.Database.URL != "" {
		pg, err := postgres.Connect(appConfig.Database.URL)
		if err != nil {
			log.Fatalf("Failed to initialize ledger database: %v", err)
		}
		defer pg.Close()
		ledger = pg
		log.Println("Using Postgres analysis ledger")
	} else {
		ledger = testkit.NewInMemoryLedger()
		log.Println("DATABASE_URL not set, using in-memory analysis ledger")
	}

	analysis := app.NewAnalysisService(ledger)

	// Sweeps need a data source: a spreadsheet when configured, demo fixtures
	// otherwise.
	var reader ports.SampleReaderPort
	if appConfig.Paths.DataFile != "" {
		reader = excel.NewDataReader(appConfig.Paths.DataFile)
		log.Printf("Serving sample columns from %s", appConfig.Paths.DataFile)
	} else {
		reader = testkit.NewFixtureReader()
	}
	batch := app.NewBatchService(reader, analysis, ledger)

	server := ui.NewServer(appConfig, analysis, batch, ledger)
	if err := server.Run(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
