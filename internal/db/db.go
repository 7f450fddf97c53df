package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/clintwin/clintwin-backend/internal/platform/envutil"
	"github.com/clintwin/clintwin-backend/internal/platform/logger"
	"github.com/clintwin/clintwin-backend/internal/types"
)

// Service owns the gorm handle. Postgres is the production driver; sqlite
// covers local development and tests without a running database.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(log *logger.Logger) (*Service, error) {
	slog := log.With("service", "DBService")

	driver := envutil.String("DB_DRIVER", "postgres")
	var (
		db  *gorm.DB
		err error
	)
	switch driver {
	case "sqlite":
		path := envutil.String("SQLITE_PATH", "clintwin.db")
		slog.Info("Opening sqlite database", "path", path)
		db, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		host := envutil.String("POSTGRES_HOST", "localhost")
		port := envutil.String("POSTGRES_PORT", "5432")
		user := envutil.String("POSTGRES_USER", "postgres")
		password := envutil.String("POSTGRES_PASSWORD", "")
		name := envutil.String("POSTGRES_NAME", "clintwin")
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		slog.Info("Connecting to Postgres", "host", host, "db", name)
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
		})
	}
	if err != nil {
		slog.Error("Failed to open database", "driver", driver, "error", err)
		return nil, fmt.Errorf("open database (%s): %w", driver, err)
	}

	return &Service{db: db, log: slog}, nil
}

// NewSQLiteInMemory opens a throwaway database. Used by tests.
func NewSQLiteInMemory(log *logger.Logger) (*Service, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return &Service{db: db, log: log.With("service", "DBService")}, nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	if err := s.db.AutoMigrate(
		&types.ScanRecord{},
		&types.Favorite{},
		&types.Reminder{},
	); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *Service) DB() *gorm.DB { return s.db }
