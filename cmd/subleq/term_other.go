//go:build !linux

package main

// setRawIO leaves the terminal as it is; input is line buffered.
func setRawIO() (func(), error) {
	return func() {}, nil
}
