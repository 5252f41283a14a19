package config

import (
	"os"
	"runtime"
)

// hostDefaults holds the defaults that depend on the host system. They
// are computed once per Document construction.
type hostDefaults struct {
	fontFamily string
	shell      string
}

func currentHost() hostDefaults {
	return hostDefaultsFor(runtime.GOOS, os.Getenv)
}

func hostDefaultsFor(goos string, getenv func(string) string) hostDefaults {
	return hostDefaults{
		fontFamily: DefaultFontFamily(goos),
		shell:      DefaultShell(goos, getenv),
	}
}

// DefaultFontFamily returns the default regular font family for an
// operating system as reported by runtime.GOOS.
func DefaultFontFamily(goos string) string {
	switch goos {
	case "darwin":
		return "Menlo"
	case "windows":
		return "Consolas"
	default:
		return "monospace"
	}
}

// DefaultShell returns the default shell program: $SHELL where set, else
// /bin/sh, or cmd.exe on Windows.
func DefaultShell(goos string, getenv func(string) string) string {
	if goos == "windows" {
		if comspec := getenv("COMSPEC"); comspec != "" {
			return comspec
		}
		return "cmd.exe"
	}
	if sh := getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
