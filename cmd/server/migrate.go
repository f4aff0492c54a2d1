package main

import (
	"github.com/comment-dashboard-api/internal/database"
	"github.com/urfave/cli/v2"
)

// withDB opens the database for a schema command and closes it afterwards
func withDB(fn func(db *database.DB, path string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}

		db, err := database.New(&cfg.Database, log)
		if err != nil {
			return err
		}
		defer db.Close()

		return fn(db, cfg.Database.MigrationsPath)
	}
}

var migrateUp = withDB(func(db *database.DB, path string) error {
	return db.RunMigrations(path)
})

var migrateDown = withDB(func(db *database.DB, path string) error {
	return db.MigrateDown(path)
})

func migrateGoto(c *cli.Context) error {
	version := c.Uint("version")
	return withDB(func(db *database.DB, path string) error {
		return db.MigrateToVersion(path, version)
	})(c)
}
