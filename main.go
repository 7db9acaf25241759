package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"timetrack/backend/foundation/web"
	"timetrack/backend/internal/auth"
	"timetrack/backend/internal/commands"
	"timetrack/backend/internal/pkg/config"
	"timetrack/backend/internal/pkg/repository/postgresql"
	"timetrack/backend/internal/router"
	"timetrack/backend/internal/shift"

	"github.com/ardanlabs/conf"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Fatalln("main: error:", err)
		}
	}
}

func run() error {
	var flags struct {
		conf.Version
		Args conf.Args
	}
	flags.SVN = "1.0.0"
	flags.Desc = "employee time and attendance service"

	if err := conf.Parse(os.Args[1:], "TIMETRACK", &flags); err != nil {
		switch {
		case errors.Is(err, conf.ErrHelpWanted):
			usage, err := conf.Usage("TIMETRACK", &flags)
			if err != nil {
				return errors.Wrap(err, "generating config usage")
			}
			fmt.Println(usage)
			return commands.ErrHelp
		case errors.Is(err, conf.ErrVersionWanted):
			version, err := conf.VersionString("TIMETRACK", &flags)
			if err != nil {
				return errors.Wrap(err, "generating config version")
			}
			fmt.Println(version)
			return commands.ErrHelp
		}
		return errors.Wrap(err, "parsing config")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return errors.Wrap(err, "loading timezone")
	}

	postgresDB := postgresql.NewDatabase(cfg.DSN(), cfg.DisableTLS)
	defer postgresDB.Close()

	if flags.Args.Num(0) == "migrate" {
		commands.MigrateUP(postgresDB)
		return nil
	}

	var redisDB *redis.Client
	if addr := cfg.RedisAddr(); addr != "" {
		redisDB = redis.NewClient(&redis.Options{Addr: addr})
		defer redisDB.Close()
	}

	authenticator, err := auth.New(cfg.PrivateKeyPath)
	if err != nil {
		return errors.Wrap(err, "constructing authenticator")
	}

	app := web.NewApp()

	r := router.NewRouter(
		app,
		postgresDB,
		redisDB,
		cfg.HTTPPort,
		authenticator,
		cfg.PrivateKeyPath,
		shift.DefaultSchedule(),
		location,
		cfg.AllowedOrigins,
	)

	return r.Init()
}
