// Package main provides build targets for duckbook using Mage.
//
// Usage:
//
//	mage build             Compile the duckbook binary to bin/
//	mage test:all          Run all tests
//	mage test:unit         Run tests that do not build the binary
//	mage test:integration  Build, then run the binary tests in cmd/duckbook
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install duckbook to GOPATH/bin
//	mage stats             Print Go LOC and documentation word counts
package main

const (
	binGo      = "go"
	binaryName = "duckbook"
	binaryDir  = "bin"
	cmdDir     = "./cmd/duckbook"
)
