// Package sqlc holds the hand-maintained queries for webhook_events and
// rate_limits. It keeps the Queries/DBTX shape of a sqlc-generated package so
// repositories can run the same calls on a pool or a transaction.
package sqlc
