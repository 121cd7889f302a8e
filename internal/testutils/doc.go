// Package testutils provides helpers shared by the package tests: HTTP test
// servers and response assertions, and builders for cards and deck files.
//
// Helper functions follow these naming conventions:
// - Create*: Create values or files for a test
// - Assert*: Verify conditions and fail the test
// - Cleanup*: Register cleanup with t.Cleanup
package testutils
