// Package common holds helpers shared by several services.
//
// It provides a process-table check that keeps two monitors from driving the
// same GPIO lines at once.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
