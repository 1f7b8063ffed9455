package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/opsapi/internal/client/cli"
	"github.com/dmitrijs2005/opsapi/internal/client/config"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cli.NewApp(cfg).Run(ctx)

}
