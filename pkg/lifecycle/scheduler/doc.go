/*
Package scheduler runs lifecycle passes on a cron schedule for the daemon
mode, serializing passes so a slow run never overlaps the next tick, and
reloads configuration when the config file changes on disk.
*/
package scheduler
