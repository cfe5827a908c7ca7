// Package retention enforces retention policies on stored analysis
// records: age-based pruning, count-based pruning, and a cron scheduler
// that runs them automatically.
package retention
