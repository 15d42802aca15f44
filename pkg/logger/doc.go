// Package logger builds the application's *slog.Logger and the HTTP access log
// middleware.
//
// New creates a logger configured by Option functions: output format (text or
// JSON), minimum level, static attributes and ContextExtractor callbacks that
// copy request-scoped values (for example the request id) into every record.
// Extractors run when a record is handled; an attribute set explicitly by the
// caller keeps its value.
//
// Attribute helpers (Error, RequestID, SessionID, Component, ...) keep key
// names consistent across packages. Error returns an empty Attr for a nil
// error so callers can log unconditionally.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Parse(cfg.Env), "webstarter"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
//	r.Use(logger.Middleware(log))
package logger
