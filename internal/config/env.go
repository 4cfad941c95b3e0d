package config

import "runtime"

// Windows spells some common variables differently.
var windowsEnvAliases = map[string]string{
	"HOSTNAME": "COMPUTERNAME",
	"USER":     "USERNAME",
	"HOME":     "USERPROFILE",
}

func mapEnvKey(key string) string {
	if runtime.GOOS != "windows" {
		return key
	}
	if alias, ok := windowsEnvAliases[key]; ok {
		return alias
	}
	return key
}
