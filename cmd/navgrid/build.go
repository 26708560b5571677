package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3/log"
	"github.com/spf13/cobra"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/config"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/mesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/store"
)

// BuildCmd rasterizes an OBJ file and prints or stores the navmesh.
func BuildCmd() *cobra.Command {
	var (
		configFile string
		resolution float64
		asJSON     bool
		save       string
	)
	c := &cobra.Command{
		Use:   "build <mesh.obj>",
		Short: "rasterize an OBJ mesh into a walkability grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			nm, err := buildFromFile(cfg, args[0], resolution)
			if err != nil {
				return err
			}

			if save != "" {
				if err := saveNavMesh(cmd.Context(), cfg, save, nm); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				return enc.Encode(nm.Export())
			}
			xl, zl := nm.Dims()
			fmt.Fprint(out, nm)
			fmt.Fprintf(out, "%d×%d cells, %d walkable, floor offset %.3f\n", xl, zl, nm.WalkableCount(), nm.FloorOffset)
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file")
	c.Flags().Float64Var(&resolution, "resolution", 0, "cells per meter (default from config)")
	c.Flags().BoolVar(&asJSON, "json", false, "print the navmesh export as JSON")
	c.Flags().StringVar(&save, "save", "", "store the navmesh under this name")
	return c
}

func buildFromFile(cfg *config.Config, path string, resolution float64) (*navmesh.NavMesh, error) {
	m, err := mesh.LoadOBJFile(path)
	if err != nil {
		return nil, err
	}
	opts := cfg.NavmeshOptions()
	if resolution != 0 {
		opts = append(opts, navmesh.WithResolution(resolution))
	}
	nm, err := navmesh.Build(m, opts...)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", path, err)
	}
	log.Debugf("built %s: %d triangles", path, m.TriangleCount())
	return nm, nil
}

func saveNavMesh(ctx context.Context, cfg *config.Config, name string, nm *navmesh.NavMesh) error {
	db, err := store.OpenSQLite(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := store.New(db)
	if err := repo.Init(ctx); err != nil {
		return err
	}
	rec, err := repo.Save(ctx, name, nm)
	if err != nil {
		return err
	}
	log.Infof("saved navmesh %q as %s", name, rec.ID)
	return nil
}
