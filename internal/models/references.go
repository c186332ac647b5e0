package models

import "github.com/Gift-726/Bus-Routing/internal/dataset"

// ReferencesModel carries the records an entry or list points at, such as
// the departure parks of listed routes.
type ReferencesModel struct {
	Parks  []dataset.Park  `json:"parks"`
	Routes []dataset.Route `json:"routes"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Parks:  []dataset.Park{},
		Routes: []dataset.Route{},
	}
}
