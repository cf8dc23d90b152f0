// Package commands defines the mars CLI and wires dependencies for subcommands.
//
// Commands
//
//   - send       Replace the stored payload with a JSON object
//   - receive    Print the stored payload
//
// # Implementation
//
// The root command loads configuration and builds the store before any
// subcommand runs, so handlers share one app.Wire.
package commands
