package version

// Build information set by ldflags
var (
	Version = "1.0.6"   // Set by goreleaser: -X github.com/waynelloyd/system-updater/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/waynelloyd/system-updater/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/waynelloyd/system-updater/internal/version.Date={{.Date}}
)
