// Package app wires application dependencies for the CLI.
//
// It loads Config from an optional TOML file and the environment, then
// builds the logger and the payload store, exposing them via Wire.
package app
