// SPDX-License-Identifier: MPL-2.0

// Package devtree implements the device-tree detection and extraction
// engine.
//
// An Inspector scans a directory that claims to be an Android device tree
// (a vendor's board/product build-configuration source tree) and produces
// a Report: which well-known marker files and directories are present,
// what identity can be derived for the device, and which drivers, HALs,
// and kernel modules the tree references.
//
// The scan is heuristic and best-effort by design. Build-configuration
// files are read line by line and classified by substring rules; no
// makefile syntax is validated and no variable references are resolved.
// Unreadable entries are skipped silently so a partially readable tree
// still yields a partial report.
package devtree
