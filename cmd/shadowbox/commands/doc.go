// Package commands implements the shadowbox command-line interface.
//
// Subcommands:
//
//	run    live capture loop with on-screen labels
//	image  classify a single still image
//	angle  compute the elbow angle and labels for three points
package commands
