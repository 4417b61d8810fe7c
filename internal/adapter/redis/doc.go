// Package redis implements the analysis result cache.
//
// ResultCache layers a short-lived in-process map over Redis. Redis commands go
// through a metrics hook and a circuit breaker hook, so an unavailable Redis turns
// into fast cache misses instead of slow requests.
package redis
