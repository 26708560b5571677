// Package navgrid turns scanned room meshes into walkable grids and finds
// paths across them.
//
// What is navgrid?
//
//	A small toolkit behind an AR editor's "walk me there" feature:
//		• mesh:      triangle meshes, bounds, OBJ loading, vertical ray probes
//		• gridgraph: int grids as graphs (flood fill, connected components)
//		• navmesh:   mesh → walkability, steepness and height grids
//		• pathfind:  weighted A* over the steepness grid
//		• selection: start/end picking sessions that feed the search
//		• store:     SQLite persistence of built navmeshes
//		• server:    HTTP API over builds and sessions
//		• config:    YAML + environment settings
//
//	cmd/navgrid wires everything into a CLI (build, path, serve);
//	examples/ holds a runnable walkthrough.
//
// Data flows one way:
//
//	mesh → navmesh.Build → selection.Session → pathfind.FindPath → Notifier
//
// The algorithm packages (mesh, gridgraph, navmesh, pathfind) are pure and
// return sentinel errors; logging happens only in selection, server and cmd.
package navgrid
