//go:build mage

// Package main provides build targets for the seewee project using Mage.
//
// Usage:
//
//	mage build            Compile seewee binary to bin/
//	mage test:all         Run all tests
//	mage test:unit        Run only unit tests (exclude integration)
//	mage test:integration Run only integration tests (builds first)
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
//	mage install          Install seewee to GOPATH/bin
//	mage stats            Print Go LOC and documentation word counts
package main
