// Package typeddata defines the read-only model the explorer walks: typed-data
// plugin definitions, validation constraint definitions, entity field schemas
// and the live field containers of loaded entities.
//
// Definitions are open-ended. A TypeDefinition is an ordered Map of metadata
// keys to values (scalars, class names, lists or nested Maps), so different
// plugin kinds can expose different shapes without a fixed struct.
//
// The package also declares the collaborator contracts the explorer consumes
// (TypeRegistry, ConstraintRegistry, EntityStore) and the error taxonomy they
// report through.
package typeddata
