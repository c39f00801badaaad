package version

// Version is the current application version, overridable at build time
// via -ldflags "-X github.com/friendsincode/aircheck/internal/version.Version=...".
var Version = "0.1.0"
