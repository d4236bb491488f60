package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ether/etherpad-todolist/lib/cli"
	"github.com/ether/etherpad-todolist/lib/loadtest"
	"github.com/ether/etherpad-todolist/lib/server"
	settings2 "github.com/ether/etherpad-todolist/lib/settings"
	"github.com/ether/etherpad-todolist/lib/utils"
)

func runSubcommand(name string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch name {
	case "config":
		return settings2.HandleConfigCommand(args, os.Stdout)
	case "cli":
		logger := utils.SetupLogger("warn", false)
		defer logger.Sync()
		return cli.RunFromCLI(ctx, logger, args, os.Stdout)
	case "loadtest":
		logger := utils.SetupLogger("info", false)
		defer logger.Sync()
		return loadtest.RunFromCLI(ctx, logger, args, os.Stdout)
	}
	return fmt.Errorf("unknown command: %s", name)
}

func main() {
	if len(os.Args) > 1 {
		if err := runSubcommand(os.Args[1], os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	settings, err := settings2.ReadConfig("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading settings: "+err.Error())
		os.Exit(1)
	}

	setupLogger := utils.SetupLogger(settings.LogLevel, settings.DevMode)
	defer setupLogger.Sync()

	server.InitServer(settings, setupLogger)
}
