package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3/log"
	"github.com/spf13/cobra"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/server"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/store"
)

// ServeCmd runs the HTTP API until interrupted.
func ServeCmd() *cobra.Command {
	var configFile string
	c := &cobra.Command{
		Use:   "serve",
		Short: "serve the navmesh and selection HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}

			db, err := store.OpenSQLite(cfg.Storage.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()

			repo := store.New(db)
			if err := repo.Init(cmd.Context()); err != nil {
				return err
			}

			srv := server.New(cfg, repo)
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				log.Infof("shutting down")
				if err := srv.Shutdown(); err != nil {
					log.Warnf("shutdown: %v", err)
				}
			}()
			return srv.Listen()
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file")
	return c
}
