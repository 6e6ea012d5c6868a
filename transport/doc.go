// Package transport provides the HTTP layer used by the sankaku client.
//
// A Client owns one pooled connection set for its lifetime and normalizes every
// response into a Response value carrying the status, an ok flag (status < 400)
// and the raw JSON body. Responses that are not JSON are reported as
// *apierr.ServerError.
//
// # Retries
//
// Transient failures (connection errors, 429 and 5xx responses) are retried a
// bounded number of times with exponential backoff. Other 4xx responses are
// returned as-is without a retry.
//
// # Proxies
//
// The environment is consulted once at construction. When ALL_PROXY, HTTPS_PROXY or
// HTTP_PROXY designates a socks URL, connections are dialed through it; otherwise
// the standard HTTP(S) proxy variables apply.
//
// # Usage
//
//	c, err := transport.New(
//		transport.WithRetries(3),
//		transport.WithLogger(logger),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	resp, err := c.Get(ctx, "https://capi-v2.sankakucomplex.com/posts", url.Values{"limit": {"40"}}, nil)
package transport
