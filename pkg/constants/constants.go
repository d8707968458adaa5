// Package constants provides shared constants used throughout the contactmerge
// codebase. This includes separators, default sheet names, file permissions and
// other values that must stay consistent between input parsing and output.
package constants

import "time"

// Separator constants
const (
	// SetSeparator joins set-valued fields on output and splits the identity
	// column on input.
	SetSeparator = "/"

	// FlagTrue is the spreadsheet encoding of a set boolean flag.
	FlagTrue = "Y"

	// FlagFalse is the spreadsheet encoding of an unset boolean flag.
	FlagFalse = "N"
)

// Sheet constants
const (
	// EmergencyReliefSheet is the sheet whose rows carry the emergency relief flag.
	EmergencyReliefSheet = "ER"

	// OtherSheet is the output sheet holding contacts without the ER flag.
	OtherSheet = "Other"

	// DefaultSentinelName is the template placeholder found on address-label
	// rows. A row with this name is not a contact.
	DefaultSentinelName = "地址貼上的名字"
)

// File constants
const (
	// DefaultOutputSuffix is appended to the input stem when no output path is given.
	DefaultOutputSuffix = "-merged"

	// DefaultAuditLogName is the audit log file written next to the output.
	DefaultAuditLogName = "merge.log"

	// DefaultProfileFile is the profile file looked up in the working directory.
	DefaultProfileFile = ".contactmerge-profile.yaml"

	// ConfigFileName is the viper config file name (without extension).
	ConfigFileName = ".contactmerge"

	// EnvPrefix prefixes every environment variable read by the CLI.
	EnvPrefix = "CONTACTMERGE"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants
const (
	// ContextCheckInterval is how often (in records) long loops check ctx.
	ContextCheckInterval = 500
)

// Timeout constants
const (
	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute

	// ShutdownTimeout bounds cleanup after a failed command
	ShutdownTimeout = 5 * time.Second
)
