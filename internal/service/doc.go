// Package service implements the domain services of the task tracking
// system. Services orchestrate store operations, enforce cross-entity
// invariants (assignee existence, email uniqueness), execute each mutation
// within a single transaction, and map entities to the transfer objects
// exposed by the API layer.
package service
