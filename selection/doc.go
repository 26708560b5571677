// Package selection owns the interactive start/end picking workflow that
// feeds the path search.
//
// A Session binds one built navmesh to one user's picks. World-space pick
// events are mapped through the inverse ground-plane pose into mesh space,
// then onto a grid cell. A pick is accepted only when the cell's steepness
// lies in the session's range; walkability is not consulted.
//
// Pick order:
//
//   - after NewSession or Reset, the first accepted pick sets start and the
//     second sets end, whatever the event's type tag says;
//   - later picks alternate between start and end;
//   - while locked, later picks keep replacing the last target.
//
// Solve runs pathfind.FindPath between the two picks and hands the result
// to the session's Notifier in the renderer's wire shape.
//
// Rejected picks, missing endpoints and failed searches are logged as
// warnings and returned as errors; none of them change session state.
// Session methods are safe for concurrent use.
package selection
