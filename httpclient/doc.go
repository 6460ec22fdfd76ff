// Package httpclient is the request side of fuel: an immutable request
// builder, an Engine boundary with a net/http Adapter, and Call, which runs
// one exchange on its own goroutine and can be cancelled.
//
// # Basic Usage
//
//	client, err := httpclient.NewClient(httpclient.Config{
//	    BaseURL: "https://api.example.com",
//	    Auth:    httpclient.BearerAuth("my-token"),
//	})
//
//	call, err := client.Get(ctx, "users/123", nil) // INVALID_TARGET is returned here
//	resp, err := call.Await(ctx)              // NETWORK_ERROR or CANCELED here
//	data, err := resp.Bytes()
//
// A 4xx or 5xx status is a response, not an error.
//
// # Streaming
//
//	req, _ := client.Build(httpclient.MethodGet, "export", nil)
//	resp, err := client.Do(ctx, req, httpclient.WithStreaming()).Await(ctx)
//	body, _ := resp.Stream()
//	defer body.Close()
//
// # With Resilience
//
// Retries belong to the engine; a Call always submits exactly once.
//
//	client, err := httpclient.NewClient(httpclient.Config{
//	    BaseURL:        "https://api.example.com",
//	    Retry:          httpclient.DefaultRetryConfig(),
//	    CircuitBreaker: httpclient.DefaultCircuitBreakerConfig("my-api"),
//	    Bulkhead:       httpclient.DefaultBulkheadConfig("my-api"),
//	})
package httpclient
