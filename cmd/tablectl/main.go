// Package main provides the tablectl CLI: a thin operator surface over
// the views backend for inspecting and managing named table views and
// live-state snapshots.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mesh-intelligence/tableview/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// exitCode distinguishes user mistakes (bad names, missing views) from
// system failures (backend unreachable, bad config file).
func exitCode(err error) int {
	switch {
	case errors.Is(err, types.ErrViewNotFound),
		errors.Is(err, types.ErrInvalidName),
		errors.Is(err, types.ErrInvalidSlug),
		errors.Is(err, types.ErrDuplicateName):
		return exitUserError
	default:
		return exitSysError
	}
}
