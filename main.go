package main

import (
	"flag"
	"log"

	"github.com/SinesysTech/aluminify-sub018/internal/app"
	"github.com/SinesysTech/aluminify-sub018/internal/config"
	"github.com/SinesysTech/aluminify-sub018/pkg/configwatcher"
	"github.com/SinesysTech/aluminify-sub018/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", application.ApplyConfig)

	application.Run()
}
