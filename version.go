package nolang

// Version is the compiled-in release identifier printed by the CLI.
const Version = "0.1.0"

// BuildDate is the release date of this version.
const BuildDate = "2026-08-30"
