// Package testutil builds on-disk notesite projects and asserts on generated
// files in tests.
package testutil

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)
