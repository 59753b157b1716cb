package main

import (
	"context"
	"log"

	"github.com/jamesyinbaare/rmps-sub007/adapters/postgres"
	"github.com/jamesyinbaare/rmps-sub007/api"
	"github.com/jamesyinbaare/rmps-sub007/internal/config"
	"github.com/jamesyinbaare/rmps-sub007/internal/errors"
	"github.com/jamesyinbaare/rmps-sub007/internal/migration"
	"github.com/jamesyinbaare/rmps-sub007/internal/ops"
	"github.com/jamesyinbaare/rmps-sub007/internal/reporting"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// initDatabase opens the PostgreSQL connection and runs migrations.
func initDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := migration.NewRunner().Run(ctx, db); err != nil {
		return nil, errors.Wrap(err, "migration failed")
	}
	return db, nil
}

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	db, err := initDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	subjectRepo := postgres.NewSubjectRepository(db)
	cycleRepo := postgres.NewCycleRepository(db)
	scoreRepo := postgres.NewScoreRepository(db)
	rangeRepo := postgres.NewGradeRangeRepository(db)

	builder := reporting.NewBuilder(subjectRepo, cycleRepo, scoreRepo, rangeRepo, cfg.Reports.OutputDir)
	reportManager := reporting.NewManager(builder, cfg.Reports.Workers)

	// Ops endpoints live on their own listener so probes never compete
	// with API traffic.
	opsServer := ops.NewServer(db, reportManager)
	go func() {
		if err := opsServer.Start(":" + cfg.Server.OpsPort); err != nil {
			log.Printf("Ops server failed: %v", err)
		}
	}()

	server := api.NewServer(subjectRepo, cycleRepo, scoreRepo, rangeRepo, reportManager)
	log.Printf("Starting grading API on port %s", cfg.Server.Port)
	log.Fatal(server.Start(":" + cfg.Server.Port))
}
