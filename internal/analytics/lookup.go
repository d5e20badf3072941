package analytics

import "farm-dashboard/internal/model"

// UnknownField is returned for dangling field references
const UnknownField = "Unknown Field"

// ResolveFieldName returns the name of the field with fieldID, or
// UnknownField when no such field exists.
func ResolveFieldName(fieldID string, fields []model.Field) string {
	for _, f := range fields {
		if f.ID == fieldID {
			return f.Name
		}
	}
	return UnknownField
}

// FieldNames maps every field id to its name
func FieldNames(fields []model.Field) map[string]string {
	names := make(map[string]string, len(fields))
	for _, f := range fields {
		names[f.ID] = f.Name
	}
	return names
}
