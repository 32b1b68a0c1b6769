//go:build unix

package config

// signalAvailable reports whether triggers.signal can deliver anything on
// this platform.
var signalAvailable = true
