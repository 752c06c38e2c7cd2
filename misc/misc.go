// Package misc keeps program wide identification values, version and hash are
// set at build time with -ldflags "-X".
package misc

const appName = "lexhtml"

var (
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name, it is used for log and report naming.
func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
