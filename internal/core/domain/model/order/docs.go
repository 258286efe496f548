// Package order implements the freight order aggregate and its lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding route, cargo, pricing and the status history
//   - Status: the lifecycle states and the table of allowed transitions
//   - StatusUpdate: an immutable history entry
//   - StatusChanged: the domain event raised for every history entry
//
// Key business rules:
//   - An order is created either as an open posting (pending) or pre-matched with a vehicle (accepted)
//   - Prices are negotiated with ProposePrice and confirmed with AcceptProposedPrice
//   - Status changes outside of negotiation follow the transition table
//   - The history is append-only with strictly increasing timestamps
package order
