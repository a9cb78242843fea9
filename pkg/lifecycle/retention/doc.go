/*
Package retention implements the cleanup pass of the log lifecycle.

The pass is a pure scan-and-filter over the log directory: it classifies
file names, skips anything the service may still be writing, and disposes
of rotated artifacts whose age exceeds the class's environment-adjusted
retention period. An optional size bound removes the oldest surviving
artifacts until the directory fits.

Disposal is deletion by default, or a move into the archive when an
Archiver is attached. Because eligibility depends only on current artifact
ages, running the pass twice in a row disposes of nothing the second time.
*/
package retention
