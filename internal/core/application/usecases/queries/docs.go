// Package queries contains the read side of the marketplace: vehicle matching,
// order lookups, the available-orders view for transporters and capacity reports.
// Query handlers never write; they read through the repository ports outside
// of a transaction and return flat views ready for serialization.
package queries
