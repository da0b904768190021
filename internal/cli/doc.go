// Package cli implements the command-line interface for mlb-hometowns.
//
// The root command asks for a team (or all 30), runs the roster pipeline for
// each one, and writes an HTML map, a KML file and a JSON result per team. The
// render subcommand redraws the maps from a saved JSON result without touching
// the network.
package cli
