// Package event provides the publish/subscribe bus that connects the grid
// document to its observers.
//
// Topics use dot notation ("grid.cell.changed"). Subscription patterns may
// contain wildcards:
//
//   - "*" matches exactly one segment ("grid.*.added")
//   - "**" matches zero or more segments ("grid.**", "**")
//
// Delivery is synchronous: Publish returns after every matching handler has
// run, in subscription order. A handler panic is recovered and reported as
// a *HandlerError; the remaining handlers still run.
package event
