package consts

import (
	"os"
	"time"
)

const (
	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// DefaultConfigFile is the config file looked up in the working directory
	DefaultConfigFile = "colsweep.yaml"

	// DefaultEnvFile is loaded (when present) before config values are expanded
	DefaultEnvFile = ".env"

	// DefaultMode is the atomicity mode used when none is configured
	DefaultMode = "transactional"

	// DefaultReportFormat is the format used when writing report files
	DefaultReportFormat = "text"

	// DefaultConnectTimeout bounds how long Open keeps retrying the initial ping
	DefaultConnectTimeout = 30 * time.Second

	// DefaultMaxOpenConns caps the connection pool opened for a run
	DefaultMaxOpenConns = 4
)
