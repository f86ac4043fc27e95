// Command migrate applies or rolls back the fyyur schema and sample data.
//
//	migrate up         apply every migration, sample data included
//	migrate down       roll back every migration
//	migrate to N       move to version N
//	migrate version    print the applied version
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/logger"

	"github.com/joho/godotenv"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate up | down | to N | version")
	os.Exit(2)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	_ = godotenv.Load()
	cfg := config.Load()
	log := logger.NewLogger(cfg.LogDir)
	defer log.Close()

	bunDB, err := database.Open(context.Background(), cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	opts := migrations.DefaultOptions()
	opts.MigrationsDir = cfg.Migrations.Dir
	runner := migrations.NewRunner(bunDB, opts, log)
	defer runner.Close()

	switch os.Args[1] {
	case "up":
		err = runner.MigrateUp()
	case "down":
		err = runner.MigrateDown()
	case "to":
		if len(os.Args) < 3 {
			usage()
		}
		var target uint64
		target, err = strconv.ParseUint(os.Args[2], 10, 32)
		if err != nil {
			log.Fatal("MIGRATE", fmt.Sprintf("Invalid version %q", os.Args[2]))
		}
		err = runner.MigrateTo(uint(target))
	case "version":
		var version uint
		var dirty bool
		version, dirty, err = runner.Version()
		if err == nil {
			fmt.Printf("version %d (dirty: %t)\n", version, dirty)
		}
	default:
		usage()
	}

	if err != nil {
		log.Fatal("MIGRATE", err.Error())
	}
	log.Info("MIGRATE", fmt.Sprintf("%s completed", os.Args[1]))
}
