/*
Package archive provides archive-before-delete for the retention cleanup
pass.

When archiving is enabled, expired artifacts are moved into the archive
directory instead of deleted, and each move is recorded in a SQLite index
keyed by class and archive time. The index answers operator queries (the
"archives" subcommand) without walking the directory; the artifacts
themselves remain ordinary files.
*/
package archive
