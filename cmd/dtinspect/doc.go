// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for dtinspect.
//
// This package implements the Cobra command hierarchy: the root command,
// the inspect command that runs the device-tree scan and prints the
// console summary, and the config command tree.
package cmd
