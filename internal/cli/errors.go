// Package cli implements the command-line interface.
package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Source and config errors
	ErrSourceNotFound = "SOURCE_NOT_FOUND"
	ErrConfigInvalid  = "CONFIG_INVALID"

	// Registry errors
	ErrProfileNotFound = "PROFILE_NOT_FOUND"

	// Build errors
	ErrBuildFailed = "BUILD_FAILED"
	ErrWatchFailed = "WATCH_FAILED"
	ErrCheckFailed = "CHECK_FAILED"

	// Package and project errors
	ErrDistNotFound   = "DIST_NOT_FOUND"
	ErrDownloadFailed = "DOWNLOAD_FAILED"
	ErrProjectExists  = "PROJECT_EXISTS"
	ErrInitFailed     = "INIT_FAILED"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileExists     = "FILE_EXISTS"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnMissingAsset    = "MISSING_ASSET"
	WarnMissingScript   = "MISSING_SCRIPT"
	WarnUnknownPlatform = "UNKNOWN_PLATFORM"
	WarnSkippedProfile  = "SKIPPED_PROFILE"
	WarnCellFailed      = "CELL_FAILED"
)
