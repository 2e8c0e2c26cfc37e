// Package store provides abstractions for data persistence. It defines the
// store interfaces consumed by the service layer, the shared error taxonomy
// for persistence failures, and the transaction helper used to make each
// service mutation an all-or-nothing unit of work.
package store
