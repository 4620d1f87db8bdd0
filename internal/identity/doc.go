// Package identity generates the synthetic full names handed out to real
// people found in a snapshot.
//
// Names are drawn by pairing a first and a last name from two ordered lists
// with an explicit Picker. The default Picker is seeded, so identical inputs
// always yield identical identities across runs and hosts. Tests can pass
// their own Picker instead of relying on process-wide random state.
package identity
