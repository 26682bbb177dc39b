package typeddata

import (
	"errors"
	"fmt"
)

// Lookup failures reported by registries, stores and the class resolver.
// They are deterministic and never retried; callers match them with errors.Is.
var (
	// ErrUnknownTypeKey is returned when a key is not in the type registry
	ErrUnknownTypeKey = errors.New("unknown type key")

	// ErrUnknownEntityType is returned when an entity type is not registered
	ErrUnknownEntityType = errors.New("unknown entity type")

	// ErrEntityNotFound is returned when no entity has the requested id
	ErrEntityNotFound = errors.New("entity not found")

	// ErrUnknownField is returned when a field is not defined on an entity
	ErrUnknownField = errors.New("unknown field")

	// ErrUnresolvableType is returned when a class reference cannot be introspected
	ErrUnresolvableType = errors.New("unresolvable type")
)

func enrich(err error, msg string, args ...any) error {
	return fmt.Errorf("%w: %s", err, fmt.Sprintf(msg, args...))
}

// UnknownTypeKey reports a missing type registry key.
func UnknownTypeKey(key string) error {
	return enrich(ErrUnknownTypeKey, "%q", key)
}

// UnknownEntityType reports an unregistered entity type.
func UnknownEntityType(entityType string) error {
	return enrich(ErrUnknownEntityType, "%q", entityType)
}

// EntityNotFound reports a missing entity.
func EntityNotFound(entityType, id string) error {
	return enrich(ErrEntityNotFound, "%s %q", entityType, id)
}

// UnknownField reports a field that the entity does not define.
func UnknownField(entityType, field string) error {
	return enrich(ErrUnknownField, "%s has no field %q", entityType, field)
}

// UnresolvableType reports a class reference without introspectable metadata.
func UnresolvableType(ref string) error {
	return enrich(ErrUnresolvableType, "%q", ref)
}
