package plugins

// LengthConstraint limits the length of a string.
type LengthConstraint struct {
	Min, Max int
}

// ConstraintID returns the constraint plugin id.
func (LengthConstraint) ConstraintID() string { return "Length" }

// NotNullConstraint requires a value.
type NotNullConstraint struct{}

// ConstraintID returns the constraint plugin id.
func (NotNullConstraint) ConstraintID() string { return "NotNull" }

// RangeConstraint bounds a numeric value.
type RangeConstraint struct {
	Min, Max float64
}

// ConstraintID returns the constraint plugin id.
func (RangeConstraint) ConstraintID() string { return "Range" }

// AllowedValuesConstraint restricts a value to a fixed set.
type AllowedValuesConstraint struct {
	Choices []string
}

// ConstraintID returns the constraint plugin id.
func (AllowedValuesConstraint) ConstraintID() string { return "AllowedValues" }

// CountConstraint bounds the number of items in a list.
type CountConstraint struct {
	Min, Max int
}

// ConstraintID returns the constraint plugin id.
func (CountConstraint) ConstraintID() string { return "Count" }

// ComplexDataConstraint applies constraints to properties of a complex value.
type ComplexDataConstraint struct {
	Properties map[string]any
}

// ConstraintID returns the constraint plugin id.
func (ComplexDataConstraint) ConstraintID() string { return "ComplexData" }

// PrimitiveTypeConstraint checks a value matches its primitive data type.
type PrimitiveTypeConstraint struct{}

// ConstraintID returns the constraint plugin id.
func (PrimitiveTypeConstraint) ConstraintID() string { return "PrimitiveType" }

// EmailConstraint checks an e-mail address.
type EmailConstraint struct{}

// ConstraintID returns the constraint plugin id.
func (EmailConstraint) ConstraintID() string { return "Email" }

// ValidReferenceConstraint checks that a referenced entity exists.
type ValidReferenceConstraint struct{}

// ConstraintID returns the constraint plugin id.
func (ValidReferenceConstraint) ConstraintID() string { return "ValidReference" }

// UniqueFieldConstraint requires a field value unique across entities.
type UniqueFieldConstraint struct{}

// ConstraintID returns the constraint plugin id.
func (UniqueFieldConstraint) ConstraintID() string { return "UniqueField" }

// All returns zero values of every type in this package, for registration in
// a class catalogue.
func All() []any {
	return []any{
		StringData{}, IntegerData{}, FloatData{}, BooleanData{}, TimestampData{},
		URIData{}, EmailData{}, LanguageReference{}, EntityReference{},
		MapData{}, ListData{}, FieldItem{}, EntityAdapter{},

		DataDefinition{}, ListDataDefinition{}, MapDataDefinition{},
		DataReferenceDefinition{}, FieldItemDataDefinition{}, EntityDataDefinition{},

		LengthConstraint{}, NotNullConstraint{}, RangeConstraint{}, AllowedValuesConstraint{},
		CountConstraint{}, ComplexDataConstraint{}, PrimitiveTypeConstraint{},
		EmailConstraint{}, ValidReferenceConstraint{}, UniqueFieldConstraint{},
	}
}
