package main

import (
	"os"

	"github.com/gofiber/fiber/v3/log"
	"github.com/spf13/cobra"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/config"
)

var VERSION = "UNKNOWN"

func main() {
	if err := RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCmd assembles the navgrid command tree.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "navgrid",
		Short:        "navmesh grid builder and path finder",
		Version:      VERSION,
		SilenceUsage: true,
	}
	root.AddCommand(BuildCmd(), PathCmd(), ServeCmd())
	return root
}

// loadConfig reads configFile (if any) and applies its log level.
func loadConfig(configFile string) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	lvl, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	return cfg, nil
}
