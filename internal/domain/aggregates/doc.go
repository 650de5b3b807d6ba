// Package aggregates declares the enrollment aggregate contract and the coded
// errors every write path returns. Persistence lives in internal/data/aggregates.
package aggregates
