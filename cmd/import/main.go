// Command import loads a score sheet into the database from the CLI,
// for bulk backfills where the upload endpoint is impractical.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jamesyinbaare/rmps-sub007/adapters/excel"
	"github.com/jamesyinbaare/rmps-sub007/adapters/postgres"
	"github.com/jamesyinbaare/rmps-sub007/domain/core"
	"github.com/jamesyinbaare/rmps-sub007/domain/exam"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	var (
		file        = flag.String("file", "", "score sheet to import (xlsx or csv)")
		subjectCode = flag.String("subject", "", "subject code")
		cycleID     = flag.String("cycle", "", "exam cycle ID")
	)
	flag.Parse()

	if *file == "" || *subjectCode == "" || *cycleID == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	subjectRepo := postgres.NewSubjectRepository(db)
	scoreRepo := postgres.NewScoreRepository(db)

	subject, err := subjectRepo.GetByCode(ctx, *subjectCode)
	if err != nil {
		log.Fatalf("Failed to resolve subject %q: %v", *subjectCode, err)
	}

	sheet, err := excel.NewSheetReader().ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to parse score sheet: %v", err)
	}

	now := time.Now().UTC()
	batch := &exam.ScoreBatch{
		ID:            core.BatchID(core.NewID()),
		SubjectID:     subject.ID,
		CycleID:       core.CycleID(*cycleID),
		SourceFile:    filepath.Base(*file),
		RecordCount:   len(sheet.Scores),
		AbsentCount:   sheet.Absent,
		WithheldCount: sheet.Withheld,
		SkippedCount:  sheet.Skipped,
		ImportedAt:    now,
	}

	records := make([]exam.ScoreRecord, 0, len(sheet.Scores))
	for _, parsed := range sheet.Scores {
		records = append(records, exam.ScoreRecord{
			ID:              core.NewID(),
			SubjectID:       subject.ID,
			CycleID:         batch.CycleID,
			BatchID:         batch.ID,
			CandidateNumber: parsed.CandidateNumber,
			Score:           parsed.Score,
			Flag:            parsed.Flag,
			CreatedAt:       now,
		})
	}

	if err := scoreRepo.CreateBatch(ctx, batch, records); err != nil {
		log.Fatalf("Failed to store score batch: %v", err)
	}
	log.Printf("Imported %d records (%d absent, %d withheld, %d skipped) from %s",
		batch.RecordCount, batch.AbsentCount, batch.WithheldCount, batch.SkippedCount, *file)
}
