//go:build tools

package tools

// This file tracks CLI tool dependencies that are not compiled into the
// binary. Mocks are regenerated with `go generate ./...`:
// - github.com/matryer/moq (service interface mocks)
// - github.com/pressly/goose/v3/cmd/goose (migrations, via the tool directive)
