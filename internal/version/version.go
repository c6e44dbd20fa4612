package version

// Version is overridden at build time with -ldflags "-X vseek/internal/version.Version=...".
var Version = "0.1.0"
