// Package common provides shared constants, types, and utilities
// used throughout the Save State application.
//
//   - Constants: file names, widget IDs, window dimensions
//   - Errors: sentinel errors for state, layout and configuration failures
//   - Logger: leveled logging to stdout and a rotating log file
//   - Utils: config and data directory helpers
//
// # Usage
//
//	common.LogInfo("Loaded state %s from %s", st, path)
//
//	if errors.Is(err, common.ErrStateRead) {
//	    // state file missing, keep the default
//	}
package common
