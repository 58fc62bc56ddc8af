// Package version holds the version information baked into the binary.
package version

import (
	"runtime"
	"runtime/debug"
)

// Software is the CLI version. Overridden at build time via
// -ldflags "-X github.com/gztensor/btcli/version.Software=...".
var Software = "dev"

// Toolchain is the Go toolchain version the binary was built with.
var Toolchain = runtime.Version()

// Substrate returns the version of the substrate RPC client dependency.
func Substrate() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == "github.com/centrifuge/go-substrate-rpc-client/v4" {
			return dep.Version
		}
	}
	return "unknown"
}
