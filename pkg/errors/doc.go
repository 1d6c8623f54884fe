// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeStorage,
//	    "failed to read configuration file",
//	    readErr,
//	    map[string]interface{}{
//	        "path":    path,
//	        "profile": profileName,
//	    },
//	)
package errors
