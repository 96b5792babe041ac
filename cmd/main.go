package main

import (
	"fmt"
	"log"

	"github.com/ToXMon/fitagent/config"
	"github.com/ToXMon/fitagent/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	log.Printf("starting fitagent backend server on %s", addr)

	r := routes.SetupRouter(cfg)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
