package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hackpoint/hackpoint-api/internal/models"
)

// ConnectPostgres establishes a connection to the PostgreSQL database using
// the provided DSN. Driver errors are translated so the repositories can
// match on gorm.ErrDuplicatedKey regardless of dialect.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres dsn must not be empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

// ConnectSQLite opens a SQLite database at the provided path, used for
// single-node deployments and local development against persisted state.
func ConnectSQLite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path must not be empty")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return db, nil
}

// Migrate applies the schema for every stored aggregate. The score identity
// index is created raw because criterion_id is nullable and two overall
// scores must still collide, which a plain multi-column unique index never
// enforces across NULLs.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Hackathon{},
		&models.Award{},
		&models.JudgingCriterion{},
		&models.Invitation{},
		&models.Participant{},
		&models.Judge{},
		&models.Score{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_score_identity ON scores (hackathon_id, project_id, judge_id, COALESCE(criterion_id, 0))",
	).Error; err != nil {
		return fmt.Errorf("failed to create score identity index: %w", err)
	}

	return nil
}
