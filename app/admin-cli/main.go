package main

import (
	"log"
	"os"

	userService "skillCompare/business/user"
	psqlRepo "skillCompare/internal/repository/postgres"
	"skillCompare/pkg/config"
	"skillCompare/pkg/database"
	"skillCompare/pkg/logger"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)

	var db *gorm.DB
	openDB := func() (*gorm.DB, error) {
		if db != nil {
			return db, nil
		}
		db, err = database.InitPostgres(cfg)
		return db, err
	}
	defer func() {
		if db != nil {
			database.ClosePostgres(db)
		}
	}()

	cli := commandLine{
		out: os.Stdout,
		newMigrator: func() (migrator, error) {
			return database.NewMigrationManager(cfg.Database.MigrateURL())
		},
		newSeeder: func() (seeder, error) {
			conn, err := openDB()
			if err != nil {
				return nil, err
			}
			return newCatalogSeeder(conn), nil
		},
		newAdmins: func() (adminCreator, error) {
			conn, err := openDB()
			if err != nil {
				return nil, err
			}
			return userService.NewUserService(psqlRepo.NewUserRepository(conn), validator.New(), nil, nil), nil
		},
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		database.ClosePostgres(db)
		os.Exit(1)
	}
}
