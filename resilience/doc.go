// Package resilience retries operations that fail for transient reasons.
//
// A RetryConfig sets the number of attempts and an exponential backoff
// between them:
//
//	f, err := resilience.Retry(cfg, func() (*os.File, error) {
//	    return os.Open(path)
//	})
//
// RetryIf decides which errors are worth another attempt. The default,
// Transient, accepts only resource exhaustion and interrupted system calls,
// so a missing file fails on the first attempt.
package resilience
