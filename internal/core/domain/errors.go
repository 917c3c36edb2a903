package domain

import "go.trai.ch/zerr"

var (
	// ErrLockfileNotFound is returned when the lockfile path does not exist.
	ErrLockfileNotFound = zerr.New("cannot find lockfile")

	// ErrLockfileReadFailed is returned when the lockfile cannot be read.
	ErrLockfileReadFailed = zerr.New("failed to read lockfile")

	// ErrLockfileParseFailed is returned when the lockfile cannot be parsed.
	ErrLockfileParseFailed = zerr.New("failed to parse lockfile")

	// ErrUnsupportedSchema is returned when the lockfile declares a schema this tool does not know.
	ErrUnsupportedSchema = zerr.New("unsupported lockfile schema")

	// ErrUnknownBinaryKind is returned when a binary entry carries an unrecognized kind tag.
	ErrUnknownBinaryKind = zerr.New("unknown binary kind")

	// ErrUnknownOS is returned when a binary entry names an unsupported operating system.
	ErrUnknownOS = zerr.New("unsupported operating system")

	// ErrUnknownCPU is returned when a binary entry names an unsupported CPU architecture.
	ErrUnknownCPU = zerr.New("unsupported cpu architecture")

	// ErrUnknownArchiveType is returned when an archive entry carries an unrecognized format hint.
	ErrUnknownArchiveType = zerr.New("unknown archive type")

	// ErrInvalidBinary is returned when a binary entry is missing a required field.
	ErrInvalidBinary = zerr.New("invalid binary entry")

	// ErrReleaseRequestFailed is returned when the latest-release API request fails.
	ErrReleaseRequestFailed = zerr.New("failed to query latest release")

	// ErrReleaseParseFailed is returned when the latest-release API response cannot be parsed.
	ErrReleaseParseFailed = zerr.New("failed to parse release metadata")

	// ErrMissingReleaseTag is returned when the release metadata lacks a tag_name field.
	ErrMissingReleaseTag = zerr.New("release metadata is missing tag_name")

	// ErrAssetFetchFailed is returned when downloading a release asset for hashing fails.
	ErrAssetFetchFailed = zerr.New("failed to fetch release asset")

	// ErrLockfileMarshalFailed is returned when the lockfile cannot be serialized.
	ErrLockfileMarshalFailed = zerr.New("failed to marshal lockfile")

	// ErrLockfileWriteFailed is returned when the lockfile cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lockfile")
)
