// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUpstream,
//	    "failed to fetch metrics from target node",
//	    cause,
//	    map[string]any{
//	        "node": addr.URL,
//	        "port": addr.MetricsPort,
//	    },
//	)
//
// Callers that only care about the classification use CodeOf:
//
//	if errors.CodeOf(err) == errors.ErrCodeTimeout {
//	    // retry later
//	}
package errors
