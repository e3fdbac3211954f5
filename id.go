package simflow

import "github.com/xraph/simflow/id"

// ID is the primary identifier type for all simflow entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
