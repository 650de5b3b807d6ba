// Package aggregates implements the enrollment write paths on top of the table
// repos. Each write runs in a single transaction so the enrollment row and the
// course enrolled_count move together, and every outcome is reported to Hooks.
package aggregates
