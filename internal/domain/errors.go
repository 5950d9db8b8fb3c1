package domain

import (
	"fmt"
	"sort"
)

// FieldErrors maps a field name to the ordered messages describing why the
// field is invalid. Valid fields never appear as keys.
type FieldErrors map[string][]string

// Keys returns the field names in sorted order.
func (fe FieldErrors) Keys() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NullEntityErrors is the synthetic mapping returned when a write receives no
// entity at all. It has a single key, the entity's own type name.
func NullEntityErrors(entityName string) FieldErrors {
	return FieldErrors{
		entityName: {fmt.Sprintf("%s cannot be null", entityName)},
	}
}

// fieldChecks accumulates messages per field in declaration order.
type fieldChecks struct {
	order  []string
	errors map[string][]string
}

func newFieldChecks(fields ...string) *fieldChecks {
	fc := &fieldChecks{order: fields, errors: make(map[string][]string, len(fields))}
	for _, f := range fields {
		fc.errors[f] = nil
	}
	return fc
}

func (fc *fieldChecks) add(field, message string) {
	fc.errors[field] = append(fc.errors[field], message)
}

// result drops fields without messages and reports whether anything failed.
func (fc *fieldChecks) result() (FieldErrors, bool) {
	out := FieldErrors{}
	for _, f := range fc.order {
		if msgs := fc.errors[f]; len(msgs) > 0 {
			out[f] = msgs
		}
	}
	return out, len(out) > 0
}
