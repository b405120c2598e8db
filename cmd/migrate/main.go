package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/PriyanshiDabral/Employee-Management/pkg/config"
	"github.com/PriyanshiDabral/Employee-Management/pkg/storage/postgres"
)

func main() {
	flag.Usage = func() {
		log.Printf("usage: migrate [up|down|status|version]")
		flag.PrintDefaults()
	}
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, 1)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, action); err != nil {
		log.Fatalf("migration %s failed: %v", action, err)
	}
	log.Printf("migration %s completed", action)
}
