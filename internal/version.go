package internal

// Version is the current application version.
// The value is overwritten at build time via ldflags.
var Version = "unknown"
