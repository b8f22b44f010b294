// Package buildinfo reports the version of the chainmap binary.
//
// Version, Commit and BuildTime are injected with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/chainmap-go/internal/infra/buildinfo.Version=v1.0.0" ./cmd/chainmap
//
// When Commit is not injected it is taken from the VCS stamp embedded by
// the go command, if present.
package buildinfo
