// Package httpserver runs the HTTP surface of the document service with
// graceful shutdown.
//
// Run blocks until its context is cancelled, the process receives SIGINT or
// SIGTERM, or Shutdown is called, and then drains open requests within the
// shutdown timeout. Server settings come from Config (HTTP_* variables) or
// Option helpers:
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness probes backed by
// dependency checks such as mongo.Healthcheck.
//
// Errors returned by Run and Shutdown match ErrStart and ErrShutdown.
package httpserver
