// Orbital - Space Exploration Data Gateway
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/orbital

/*
Package services adapts Orbital components to suture.Service.

  - HTTPServerService: ListenAndServe with graceful Shutdown on cancel
  - ProbeService: probe.Monitor.Run at the configured interval
  - CacheGCService: BadgerDB value log GC for the persistent cache

Each wrapper implements fmt.Stringer so suture log events name it. Services
return ctx.Err() on shutdown; configuration errors that a restart cannot
fix wrap suture.ErrDoNotRestart.
*/
package services
