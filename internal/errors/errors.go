package errors

import "errors"

// Input errors indicate the settings document itself is unusable.
var (
	// ErrMalformedInput indicates the settings XML could not be tokenized.
	ErrMalformedInput = errors.New("malformed settings XML")

	// ErrInvalidABX indicates an Android Binary XML stream is corrupt or truncated.
	ErrInvalidABX = errors.New("invalid binary XML")
)

// Source errors indicate the settings store could not be reached.
var (
	// ErrSourceUnavailable indicates the settings file could not be read from the source.
	ErrSourceUnavailable = errors.New("settings source unavailable")

	// ErrRootNotGranted indicates the privileged shell refused root access.
	ErrRootNotGranted = errors.New("root permission is not granted")

	// ErrNoDevice indicates no adb device is attached.
	ErrNoDevice = errors.New("no adb device attached")
)

// Lookup errors indicate the requested item does not exist.
var (
	// ErrUnknownKind indicates the settings file kind is not one of config, global, secure or system.
	ErrUnknownKind = errors.New("unknown settings file kind")

	// ErrSettingNotFound indicates no setting with the requested name exists.
	ErrSettingNotFound = errors.New("setting not found")
)

// Usage errors indicate invalid options.
var (
	// ErrUnsupportedFormat indicates an unknown export format.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrInvalidConfigKey indicates an unknown preference key.
	ErrInvalidConfigKey = errors.New("unknown configuration key")

	// ErrWatchUnsupported indicates the selected source cannot be watched for changes.
	ErrWatchUnsupported = errors.New("source does not support watching")
)
