package main

import (
	"context"
	"log"
	"os"

	"notekeeper/internal/buildinfo"
	"notekeeper/internal/cli"
	"notekeeper/internal/config"
	"notekeeper/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg, logging.NewDefault())

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
