// Package ports defines the contracts between the freight domain and its
// infrastructure: repositories, the unit of work, the geocoder and the event
// publisher. Adapters under internal/adapters implement them.
package ports
