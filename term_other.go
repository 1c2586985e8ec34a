//go:build !linux && !darwin

package main

import "io"

// isTerminal is not supported on this platform, so colour must be requested
func isTerminal(w io.Writer) bool {
	return false
}
