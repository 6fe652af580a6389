// Package version reports build metadata for the airlinerank binary.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/airlinerank/version.Version=1.2.0" ./cmd/airlinerank
//
// Values left empty are filled from the module's embedded VCS build info.
package version
