package postgres

import (
	"fmt"
	"os"
	"paygate/api/internal/config"
	"paygate/api/internal/domain"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// every table owned by the api
var tables = []any{
	&domain.Members{},
	&domain.Currencies{},
	&domain.Blockchains{},
	&domain.BlockchainCurrencies{},
	&domain.Wallets{},
	&domain.PaymentAddresses{},
	&domain.Events{},
}

func Init(config *config.Config) *gorm.DB {
	dbConfig := config.Postgres
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s", dbConfig.Host, dbConfig.User, dbConfig.Password, dbConfig.Db_name, dbConfig.Port, dbConfig.Ssl_mode)

	db, err := open(dsn)
	if err != nil {
		panic("Gorm error: " + err.Error())
	}

	if err := db.AutoMigrate(tables...); err != nil {
		panic("Auto migrate error: " + err.Error())
	}

	if config.SeedPath != "" {
		if err := SeedFile(db, config.SeedPath); err != nil {
			panic("Seed error: " + err.Error())
		}
	}

	return db
}

func open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}

// env var with a dsn for repository tests
const TestDSNEnv = "PAYGATE_TEST_DSN"

// InitTest connects to the test database from PAYGATE_TEST_DSN,
// returns nil when it is not set.
func InitTest() (*gorm.DB, error) {
	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		return nil, nil
	}

	db, err := open(dsn)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return nil, err
	}
	return db, nil
}

func DropTables(db *gorm.DB) error {
	return db.Migrator().DropTable(tables...)
}
