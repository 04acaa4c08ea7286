// Package version exposes build metadata for the ratecard-wallet binaries.
//
// The values are set at build time, e.g.
//
//	go build -ldflags "-X github.com/adspaceng/ratecard-wallet/internal/version.version=v1.2.0 \
//	  -X github.com/adspaceng/ratecard-wallet/internal/version.buildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ) \
//	  -X github.com/adspaceng/ratecard-wallet/internal/version.gitCommit=$(git rev-parse --short HEAD)"
package version

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

type Info struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Get returns the build information for the running binary
func Get() Info {
	return Info{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}
}
