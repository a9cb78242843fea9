/*
Package health provides the daemon's probe endpoints: a trivial liveness
check plus readiness checks that verify what a lifecycle run actually
depends on, the log directory being writable and the rotation state store
location being usable.
*/
package health
