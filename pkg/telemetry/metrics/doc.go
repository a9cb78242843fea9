/*
Package metrics exposes Prometheus metrics for lifecycle runs in daemon
mode: phase counts and durations, cleanup totals, and the timestamp of the
last fully successful run, which is the signal scrape-side alerting should
watch.
*/
package metrics
