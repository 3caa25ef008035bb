// Package httputil provides the retry helper shared by the GitHub clients.
//
// # Retry
//
// [Retry] re-runs an operation a fixed number of times with a fixed pause
// between attempts. Only errors wrapped in [RetryableError] are retried;
// anything else is returned immediately. bumpkit marks exactly one failure
// as retryable: an HTTP 401 from the GitHub repository endpoint, which the
// API occasionally returns for valid tokens under load.
//
//	err := httputil.Retry(ctx, httputil.Policy{Attempts: 3, Delay: 5 * time.Second}, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return err
//	    }
//	    if resp.StatusCode == http.StatusUnauthorized {
//	        return &httputil.RetryableError{Err: integrations.ErrUnauthorized}
//	    }
//	    return nil
//	})
//
// # Configuration
//
// [DefaultPolicy] matches the retry settings of the `[github]` section of
// bumpkit.toml:
//
//   - Attempts: 3
//   - Delay: 5 seconds, constant
package httputil
