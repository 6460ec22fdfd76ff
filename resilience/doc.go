// Package resilience provides the fault-tolerance policies the fuel HTTP
// engine can apply around a single network exchange.
//
//   - Retry: retries failed exchanges with exponential backoff
//   - CircuitBreaker: fails fast while the remote side is unhealthy
//   - RateLimiter: paces outgoing requests (token bucket, x/time/rate)
//   - Bulkhead: bounds the number of calls in flight
//
// Retry, CircuitBreaker and RateLimiter belong to the engine; the call
// bridge itself never retries. Bulkhead admission happens on the call's
// worker goroutine so the caller is never blocked by it, and a streamed
// call keeps its slot until the body is closed.
package resilience
