// Package commands wires the formsend subcommands: serve runs the demo echo
// server, submit fills the demo form in the terminal and sends it, routes
// lists the documented endpoints and lint-rules checks rule files.
package commands
