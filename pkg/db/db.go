package db

import (
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	constant "liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

// AllModels lists every table in migration order.
var AllModels = []any{
	&models.AlertType{},
	&models.User{},
	&models.Vehicle{},
	&models.Tire{},
	&models.PressureReading{},
	&models.Notification{},
}

func GetInstance(dialector gorm.Dialector) *DB {
	var logger = constant.GetLogger()
	once.Do(func() {
		conn, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}

		logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

		instance = &DB{Conn: conn}

		if dialector.Name() == "sqlite" {
			// sqlite pragmas are per connection, so pin the pool to a single one
			// before enabling them.
			sqlDB, err := conn.DB()
			if err != nil {
				log.Fatal("Failed to access sqlite connection pool:", err)
			}
			sqlDB.SetMaxOpenConns(1)

			if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
				log.Fatal("Failed to enable sqlite foreign key support", err)
			}

			if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
				log.Fatal("Failed to set sqlite journal mode", err)
			}
		}

		if err := instance.Conn.AutoMigrate(AllModels...); err != nil {
			log.Fatal("Failed to migrate database:", err)
		}

		logger.Info("Database migration completed")

		seeded, err := SeedAlertTypes(instance.Conn)
		if err != nil {
			log.Fatal("Failed to seed alert types:", err)
		}

		logger.Info("Alert types ready", zap.Int("seeded", seeded))
	})
	return instance
}

func UseSqliteDialector() gorm.Dialector {
	var dbPath string
	var found bool
	if dbPath, found = os.LookupEnv(constant.EnvKeyTPMSDbPath); !found {
		dbPath = "tpms.db"
	}
	return sqlite.Open(dbPath)
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

func UsePostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}

// UseDialector picks the dialector named by cfg.DBType.
func UseDialector(cfg *constant.Config) gorm.Dialector {
	switch cfg.DBType {
	case constant.DBTypeMemory:
		return UseMemorySqliteDialector()
	case constant.DBTypePostgres:
		return UsePostgresDialector(cfg.PostgresDSN)
	default:
		return sqlite.Open(cfg.DBPath)
	}
}
