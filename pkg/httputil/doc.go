// Package httputil provides HTTP utilities for the share-server client.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Wrap transient errors in [RetryableError] so Retry knows to try again;
// anything else fails immediately. The delay doubles after each attempt.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    ...
//	})
//
// Defaults via [RetryWithBackoff]: 3 attempts, 1 second base delay.
package httputil
