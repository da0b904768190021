// Package storage owns the run's output directory.
//
// Every file a run writes is named from the run's start time: the run log
// (MLB_player_hometowns_<YYYYmmdd_HHMM>.txt) and, per team, the map artifacts
// and JSON result (MLB_player_hometowns_<TEAM>_<YYYYmmdd_HHMM>[__<N>_missing].<ext>).
// The default directory is ./output.
package storage
