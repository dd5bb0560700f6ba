// Package raptor implements a Round-bAsed Public Transit Optimized Router
// (RAPTOR): given a GTFS-style timetable and one or more origin stops with a
// departure-time window, it computes the earliest arrival time to every
// reachable stop, tracking boarding count (not Pareto-optimized against
// arrival time) as a byproduct.
//
// Calendar/exception expansion, shape geometry, and GTFS archive parsing are
// out of scope for this package; see internal/gtfsfeed for the latter.
package raptor
