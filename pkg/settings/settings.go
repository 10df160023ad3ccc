// Package settings provides build metadata, per-run configuration, and
// context helpers shared by the vardump CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "vardump"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds the commit hash, version and build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// Run holds the resolved settings of one CLI invocation: flags merged over
// the configuration file.
type Run struct {
	MinLogLevel int8
	NoColor     bool
	Theme       string
	Palette     string
	MaxDepth    int
	Indent      int
	Expression  string
	Script      bool
	Decode      bool
	Label       string
	NoLocation  bool
	Limit       int
	Offset      int
	Tail        int
}

// NewCliParams returns settings with CLI defaults.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Theme:       "auto",
		MaxDepth:    10,
		Indent:      4,
	}
}
