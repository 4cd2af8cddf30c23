/*
Package observability turns engine lifecycle events into telemetry.

Metrics exposes Prometheus counters for choices, node visits, endings and
restarts, and LoggingHooks writes every event to a structured logger. Both
return domain.LifecycleHooks, which can be merged and handed to the engine.
*/
package observability
