// Package kernel holds the value objects shared by every aggregate of the
// freight domain:
//   - UUID: identifiers for users, vehicles and orders
//   - Coordinate: a geocoded point with haversine distance and geohash encoding
//   - Location: an address with an optional coordinate and tracking timestamp
//   - Currency: the ISO codes vehicles may quote prices in
//
// All of them are immutable and must be created through their constructors;
// zero values fail validation.
package kernel
