//go:build windows

package config

import "os"

// windowsEnvAliases lets configs written on unix point at save folders on
// Windows without edits.
var windowsEnvAliases = map[string]string{
	"HOME":          "USERPROFILE",
	"HOSTNAME":      "COMPUTERNAME",
	"XDG_DATA_HOME": "LOCALAPPDATA",
}

func mapEnvKey(key string) string {
	alias, ok := windowsEnvAliases[key]
	if !ok {
		return key
	}
	if _, set := os.LookupEnv(key); set {
		return key
	}
	return alias
}
