// Lumiere - Self-Hosted Media Browser
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/lumiere

/*
Package media implements the secure streaming media-serving subsystem.

It turns a client-supplied relative path into bytes delivered over HTTP,
for three payload classes with different serving strategies:

  - StreamableBinary (video): range-capable, streamed in bounded chunks
  - OpaqueBinary (images, documents, unknown): served whole, ranges ignored
  - Text: read whole, charset-detected, transcoded to UTF-8 before responding

The pipeline per request is:

	Sandbox.Resolve -> Service.Describe -> Classify -> Negotiate -> Stream | NormalizeText

Sandbox.Resolve is the security boundary: every other component trusts its
output unconditionally. Resolution is pure path arithmetic; the first
filesystem access happens in Describe, after the sandbox check has passed.

All components are pure functions over their inputs except the streamer,
which owns a transient read handle scoped to one request and guarantees its
release on every exit path (success, I/O error, client cancellation).
*/
package media
