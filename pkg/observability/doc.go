/*
Package observability turns explorer lifecycle events into logs and
Prometheus metrics.

Both are exposed as domain.LifecycleHooks so they plug into the sampler and
the session manager the same way:

	hooks := observability.Combine(
		observability.LogHooks(logger),
		observability.NewMetrics(prometheus.DefaultRegisterer).Hooks(),
	)
*/
package observability
