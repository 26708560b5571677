package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/navmesh"
	"github.com/ptcrealitylab/vuforia-spatial-toolbox-userinterface-sub004/pathfind"
)

// PathCmd builds a navmesh and draws the path between two cells.
func PathCmd() *cobra.Command {
	var (
		configFile string
		resolution float64
		from, to   string
		minSteep   float64
		maxSteep   float64
	)
	c := &cobra.Command{
		Use:   "path <mesh.obj>",
		Short: "find a path between two grid cells of a built mesh",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			start, err := parseCell(from)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			end, err := parseCell(to)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			steep := cfg.Steepness
			if cmd.Flags().Changed("min-steepness") {
				steep.Min = minSteep
			}
			if cmd.Flags().Changed("max-steepness") {
				steep.Max = maxSteep
			}

			nm, err := buildFromFile(cfg, args[0], resolution)
			if err != nil {
				return err
			}
			res, err := pathfind.FindPath(nm.Steepness, start, end,
				pathfind.WithSteepnessRange(steep.Min, steep.Max),
				pathfind.WithCellSize(nm.CellSize()),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, overlay(nm, res))
			fmt.Fprintf(out, "%d steps, %.3f m\n", res.Steps(), res.Length)
			return nil
		},
	}
	c.Flags().StringVar(&configFile, "config", "", "config file")
	c.Flags().Float64Var(&resolution, "resolution", 0, "cells per meter (default from config)")
	c.Flags().StringVar(&from, "from", "", "start cell as i,j")
	c.Flags().StringVar(&to, "to", "", "end cell as i,j")
	c.Flags().Float64Var(&minSteep, "min-steepness", pathfind.DefaultMinSteepness, "minimum passable slope in degrees")
	c.Flags().Float64Var(&maxSteep, "max-steepness", pathfind.DefaultMaxSteepness, "maximum passable slope in degrees")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}

// parseCell reads "i,j".
func parseCell(s string) (pathfind.Cell, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return pathfind.Cell{}, fmt.Errorf("cell %q: want i,j", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return pathfind.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	j, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return pathfind.Cell{}, fmt.Errorf("cell %q: %w", s, err)
	}
	return pathfind.Cell{I: i, J: j}, nil
}

// overlay renders the walkability grid with the path drawn as '*',
// 'S' and 'E' marking its ends.
func overlay(nm *navmesh.NavMesh, res *pathfind.Result) string {
	rows := strings.Split(strings.TrimSuffix(nm.String(), "\n"), "\n")
	grid := make([][]byte, len(rows))
	for j, row := range rows {
		grid[j] = []byte(row)
	}
	for k, n := range res.Path {
		mark := byte('*')
		switch k {
		case 0:
			mark = 'S'
		case len(res.Path) - 1:
			mark = 'E'
		}
		grid[n.J][n.I] = mark
	}
	var sb strings.Builder
	for _, row := range grid {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
