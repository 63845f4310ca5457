// Package linkcheck provides an HTTP client for the broken-links backend.
//
// # Overview
//
// The backend owns crawling, probing and failure classification. This package
// only submits a crawl and decodes the result set:
//
//	client, err := linkcheck.NewClient("http://localhost:8080", time.Minute)
//	if err != nil {
//		return err
//	}
//	results, err := client.CheckLinks(ctx, linkcheck.CheckRequest{
//		URL:   "https://example.com",
//		Depth: 2,
//	})
//
// # API Endpoints
//
//   - POST /api/check-links: body {"url": string, "depth": int}, response is a
//     JSON array of LinkResult objects
//   - GET /api/health: liveness probe
//
// # Request Handling
//
// Every request carries Accept: application/json, a linkcheck/* User-Agent and
// a fresh X-Request-ID so a failing crawl can be found in backend logs. The
// http.Client timeout bounds each call; callers may tighten it with ctx.
//
// # Error Handling
//
//   - Network failures: "execute request: ..."
//   - Non-2xx: *APIError, carrying the backend's {"error": ...} message when present
//   - Malformed bodies: "decode response: ..."
//
// There are no retries. A failed check is reported once and the caller keeps
// whatever results it already had.
//
// # response_time
//
// The backend has serialised response_time both as a string ("123.4ms") and as
// a number. ResponseTime keeps either form as text; turning it into a duration
// is the table formatter's job.
package linkcheck
