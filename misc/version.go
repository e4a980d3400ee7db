package misc

// Set at build time via -ldflags "-X caret/misc.version=... -X caret/misc.gitHash=...".
var (
	appName = "caret"
	version = "development"
	gitHash = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

func GetGitHash() string {
	return gitHash
}
