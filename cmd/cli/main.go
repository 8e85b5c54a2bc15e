package main

import (
	"context"
	"log"
	"os"

	"github.com/dvelez2005/civicwatch/internal/buildinfo"
	"github.com/dvelez2005/civicwatch/internal/client/cli"
	"github.com/dvelez2005/civicwatch/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
