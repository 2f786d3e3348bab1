// Package entity defines the core domain entities and validation logic for the application.
// It contains the Place record served by the remote board endpoint, along with
// validation rules and domain-specific errors.
package entity

// Place represents one entry on the places board.
// All three fields are required; a Place is only ever constructed from an
// element that carried all of them (see the decode package).
type Place struct {
	Name        string
	Description string
	Location    string
}
