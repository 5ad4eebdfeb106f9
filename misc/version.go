// Package misc holds build time information about the program.
package misc

// Set at link time with -ldflags "-X tgrab/misc.version=... -X tgrab/misc.gitHash=...".
var (
	version = "dev"
	gitHash = "unknown"
)

const appName = "tgrab"

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
