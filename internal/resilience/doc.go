// Package resilience provides reliability and fault tolerance patterns for the application.
// It includes circuit breakers and retry logic used by the transport layer when
// talking to the remote board endpoint.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.TransportConfig())
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return fetchEndpoint()
//	})
//
//	err := retry.WithBackoff(ctx, retry.TransportConfig(), func() error {
//	    return performOperation()
//	})
package resilience
