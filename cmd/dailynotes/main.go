package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/mkravets/dailynotes/internal/client/cli"
	"github.com/mkravets/dailynotes/internal/client/config"
	"github.com/mkravets/dailynotes/internal/logging"
)

func main() {
	cfg := config.LoadConfig()

	zl, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer zl.Sync()

	app := cli.NewApp(cfg, logging.NewZapLogger(zl))
	app.Run(context.Background())
}
