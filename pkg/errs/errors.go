// Package errs defines the error taxonomy shared by the colsweep packages.
//
// Four kinds of failure are distinguished:
//
//   - ConfigurationError: the request itself is invalid (missing column name or
//     type, unknown mode, a system table named explicitly). Raised before any
//     table is touched.
//   - ConnectivityError: a connection could not be obtained or validated.
//   - MetadataError: listing tables or columns failed.
//   - DDLExecutionError: the engine rejected an ALTER/COMMENT statement.
//
// Only DDLExecutionError has mode-dependent recovery: the executor turns it into
// a Failed outcome in isolated mode and aborts the batch in transactional mode.
// Every other kind aborts the run.
package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

type (
	// ConfigurationError reports an invalid column spec or migration request.
	ConfigurationError struct {
		Reason string
	}

	// ConnectivityError reports a connection that could not be obtained or validated.
	ConnectivityError struct {
		Err error
	}

	// MetadataError reports a failed catalog or column enumeration.
	MetadataError struct {
		Op  string
		Err error
	}

	// DDLExecutionError reports a statement rejected by the database engine.
	DDLExecutionError struct {
		Table     string
		Statement string
		Err       error
	}
)

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + e.Reason
}

func (e *ConnectivityError) Error() string {
	return "connectivity: " + e.Err.Error()
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata: %s: %v", e.Op, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

func (e *DDLExecutionError) Error() string {
	return fmt.Sprintf("ddl on %s failed: %v", e.Table, e.Err)
}

func (e *DDLExecutionError) Unwrap() error { return e.Err }

// Reason returns the driver message, unmodified.
func (e *DDLExecutionError) Reason() string {
	if e.Err == nil {
		return ""
	}

	return e.Err.Error()
}

// Configuration creates a ConfigurationError with a formatted reason.
func Configuration(format string, args ...any) error {
	return errors.WithStack(&ConfigurationError{Reason: fmt.Sprintf(format, args...)})
}

// Connectivity wraps err as a ConnectivityError. A nil err returns nil.
func Connectivity(err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&ConnectivityError{Err: err})
}

// Metadata wraps err as a MetadataError for the named operation. A nil err returns nil.
func Metadata(op string, err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&MetadataError{Op: op, Err: err})
}

// DDLExecution wraps err as a DDLExecutionError. A nil err returns nil.
func DDLExecution(table, statement string, err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&DDLExecutionError{Table: table, Statement: statement, Err: err})
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// IsConnectivity reports whether err is (or wraps) a ConnectivityError.
func IsConnectivity(err error) bool {
	var target *ConnectivityError
	return errors.As(err, &target)
}

// IsMetadata reports whether err is (or wraps) a MetadataError.
func IsMetadata(err error) bool {
	var target *MetadataError
	return errors.As(err, &target)
}

// AsDDLExecution returns the DDLExecutionError inside err, if any.
func AsDDLExecution(err error) (*DDLExecutionError, bool) {
	var target *DDLExecutionError
	if errors.As(err, &target) {
		return target, true
	}

	return nil, false
}

// IsDDLExecution reports whether err is (or wraps) a DDLExecutionError.
func IsDDLExecution(err error) bool {
	_, ok := AsDDLExecution(err)
	return ok
}
