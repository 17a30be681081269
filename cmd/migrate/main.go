package main

import (
	"errors"
	"flag"
	"log"

	"forum_thread/internal/pkg/config"
	"forum_thread/pkg/database"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("path", "migrations", "directory holding the migration files")
	down := flag.Bool("down", false, "roll back every applied migration")
	force := flag.Int("force", -1, "force the schema version and clear the dirty flag")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}
	config.LoadConfig()

	m, err := migrate.New("file://"+*dir, database.MigrationURL(config.GlobalConfig.Database))
	if err != nil {
		log.Fatal(err)
	}
	defer m.Close()

	if *force >= 0 {
		if err := m.Force(*force); err != nil {
			log.Fatal("Failed to force version:", err)
		}
		log.Printf("Forced schema version %d", *force)
		return
	}

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}

	var dirty migrate.ErrDirty
	switch {
	case err == nil, errors.Is(err, migrate.ErrNoChange):
		log.Println("Migration successful")
	case errors.As(err, &dirty):
		log.Fatalf("Database is dirty at version %d, fix it and rerun with -force=%d", dirty.Version, dirty.Version-1)
	default:
		log.Fatal(err)
	}
}
