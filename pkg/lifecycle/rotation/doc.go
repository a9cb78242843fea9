/*
Package rotation wraps the external rotation engine and its persisted state
store.

The engine (logrotate in the shipped image) is delegated to as a black box:
it applies the rotation rules, renames or compresses log files using atomic
rename, and records progress in a state file so repeated runs rotate nothing
twice. Custodian owns neither the rules nor the state content. Its contract
with the state store is limited to verifying, before every engine
invocation, that the storage location exists and is accessible; absence of
the file on first run is expected and the engine initializes it.

An inaccessible state location is surfaced as ErrStateUnreadable rather than
an engine failure, because the engine's exit status cannot speak for a file
it was never able to reach.
*/
package rotation
