// Package version holds build information injected at link time, e.g.
//
//	go build -ldflags "-X github.com/oshokin/somegotools/internal/version.Version=1.2.3"
package version

//nolint:gochecknoglobals // Set by the linker.
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the VCS revision of the build.
	Commit = "none"
	// BuildTime is the moment the binary was built.
	BuildTime = "unknown"
)

// Short returns the version only.
func Short() string {
	return Version
}

// Full returns the version with the commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
