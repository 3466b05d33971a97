package version

// Version is the clipsend release version, overridden at build time with
// -ldflags "-X github.com/clipsend/clipsend/internal/core/version.Version=...".
var Version = "0.1.0"
