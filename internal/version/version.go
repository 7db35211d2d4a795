// Package version records the build identity of the iconfit CLI.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Overridable at build time via -ldflags.
var (
	// Number is the plain semantic version.
	Number = "0.1.0"

	// Commit is an optional git commit hash.
	Commit = ""

	// Date is an optional build date in ISO-8601.
	Date = ""
)

// Pretty returns the version with each component highlighted.
func Pretty() string {
	parts := strings.SplitN(Number, ".", 3)
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return color.New(color.FgYellow, color.Bold).Sprint(parts[0]) + "." +
		color.New(color.FgGreen, color.Bold).Sprint(parts[1]) + "." +
		color.New(color.FgBlue, color.Bold).Sprint(parts[2])
}
