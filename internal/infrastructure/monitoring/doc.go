/*
Package monitoring provides Prometheus metrics for the host.

# Overview

Tracks bridge HTTP requests, plugin invocations, api.fetch proxy traffic,
shell sessions, and WebSocket connections.

# Usage

	// Create metrics collector
	metrics := monitoring.NewMetrics()

	// Add middleware to Gin router
	router.Use(monitoring.Middleware(metrics))

	// Time invocations
	timer := monitoring.NewTimer(metrics, "store", "set")
	// ... perform operation ...
	timer.Stop("success")

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
