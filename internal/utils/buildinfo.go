package utils

import (
	"runtime/debug"
)

const (
	unknownVersion     = "unknown"
	developmentVersion = "(devel)"
)

// Version is overridden at link time with -ldflags "-X github.com/temirov/codeoffolder/internal/utils.Version=v1.2.3".
var Version = EmptyString

// GetApplicationVersion reports the linked version, then the module version
// recorded in the build info, and finally "unknown".
func GetApplicationVersion() string {
	if Version != EmptyString {
		return Version
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != EmptyString && buildInfo.Main.Version != developmentVersion {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
