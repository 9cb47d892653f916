// Package server wires the OpenNotes host together.
//
// This package orchestrates all components:
//   - Bridge routing with Gin framework
//   - Middleware stack (recovery, metrics, CORS, rate limiting)
//   - Capability plugin registration
//   - WebSocket command stream
//
// Host Lifecycle:
//  1. Load configuration from environment
//  2. Initialize logger (production or development)
//  3. Resolve and create the data directory
//  4. Register capability plugins (log plugin in development only)
//  5. Setup bridge routes and middleware
//  6. Serve on the loopback bridge address
//  7. Graceful shutdown on signal
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
