package settings

import "os"

// version is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/ghost2804/finhub/pkg/settings.version=$(git describe --tags)"
var version = "dev"

// InDevelop 是否开发模式
func InDevelop() bool {
	if v, ok := os.LookupEnv("FINHUB_MODE"); ok {
		return v == "dev" || v == "develop"
	}
	return version == "dev"
}
