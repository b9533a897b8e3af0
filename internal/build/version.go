package build

var (
	Version   = "1.0"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// UserAgent returns the identifier sent on every request to the remote
// service.
func UserAgent() string {
	return "whois-client/" + Version
}
