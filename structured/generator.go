package structured

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// SchemaGenerator builds a JSONSchema from a Go type via reflection.
// Struct fields declare their constraint table with the "jsonschema" tag;
// field names come from the "json" tag.
//
// Supported jsonschema tag options:
//   - required
//   - minimum=N, maximum=N (inclusive)
//   - minLength=N, maxLength=N
//   - minItems=N, maxItems=N
//   - pattern=<regexp>
//   - format=email|uri|uuid|date|date-time
//   - enum=a,b,c
//   - description=<text>
//   - default=<value>
type SchemaGenerator struct {
	visited map[reflect.Type]bool
}

// NewSchemaGenerator creates a new SchemaGenerator.
func NewSchemaGenerator() *SchemaGenerator {
	return &SchemaGenerator{visited: make(map[reflect.Type]bool)}
}

// GenerateSchema generates a JSON Schema from a Go type.
func (g *SchemaGenerator) GenerateSchema(t reflect.Type) (*JSONSchema, error) {
	g.visited = make(map[reflect.Type]bool)
	return g.generate(t)
}

// GenerateSchemaFromValue generates a JSON Schema from a value's type.
func (g *SchemaGenerator) GenerateSchemaFromValue(v any) (*JSONSchema, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot generate schema from nil value")
	}
	return g.GenerateSchema(reflect.TypeOf(v))
}

func (g *SchemaGenerator) generate(t reflect.Type) (*JSONSchema, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot generate schema for nil type")
	}

	if t.Kind() == reflect.Ptr {
		return g.generate(t.Elem())
	}

	if g.visited[t] {
		// Placeholder for recursive types.
		return &JSONSchema{Type: TypeObject}, nil
	}

	switch t.Kind() {
	case reflect.String:
		return NewStringSchema(), nil

	case reflect.Bool:
		return NewBooleanSchema(), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NewIntegerSchema(), nil

	case reflect.Float32, reflect.Float64:
		return NewNumberSchema(), nil

	case reflect.Slice, reflect.Array:
		elem, err := g.generate(t.Elem())
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for array element: %w", err)
		}
		return NewArraySchema(elem), nil

	case reflect.Struct:
		return g.generateStruct(t)

	case reflect.Interface:
		// Any type.
		return &JSONSchema{}, nil

	default:
		return nil, fmt.Errorf("unsupported type: %s", t.Kind())
	}
}

func (g *SchemaGenerator) generateStruct(t reflect.Type) (*JSONSchema, error) {
	g.visited[t] = true
	defer func() { g.visited[t] = false }()

	schema := NewObjectSchema()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldName := jsonFieldName(field)
		if fieldName == "-" {
			continue
		}

		fieldSchema, err := g.generate(field.Type)
		if err != nil {
			return nil, fmt.Errorf("failed to generate schema for field %s: %w", field.Name, err)
		}

		if err := applySchemaTag(fieldSchema, field); err != nil {
			return nil, fmt.Errorf("failed to apply jsonschema tag for field %s: %w", field.Name, err)
		}

		if _, ok := tagOptions(field.Tag.Get("jsonschema"))["required"]; ok {
			schema.Required = append(schema.Required, fieldName)
		}

		schema.Properties[fieldName] = fieldSchema
	}

	return schema, nil
}

// jsonFieldName extracts the field name from the json tag, falling back to
// the struct field name.
func jsonFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return field.Name
	}
	return name
}

// applySchemaTag applies jsonschema tag constraints to a field schema.
func applySchemaTag(schema *JSONSchema, field reflect.StructField) error {
	opts := tagOptions(field.Tag.Get("jsonschema"))
	if len(opts) == 0 {
		return nil
	}

	if desc, ok := opts["description"]; ok {
		schema.Description = desc
	}
	if def, ok := opts["default"]; ok {
		schema.Default = parseDefaultValue(def, field.Type)
	}
	if enumStr, ok := opts["enum"]; ok {
		values := strings.Split(enumStr, ",")
		schema.Enum = make([]any, len(values))
		for i, v := range values {
			schema.Enum[i] = strings.TrimSpace(v)
		}
	}
	if v, ok := intOption(opts, "minLength"); ok {
		schema.MinLength = &v
	}
	if v, ok := intOption(opts, "maxLength"); ok {
		schema.MaxLength = &v
	}
	if pattern, ok := opts["pattern"]; ok {
		schema.Pattern = pattern
	}
	if format, ok := opts["format"]; ok {
		schema.Format = StringFormat(format)
	}
	if v, ok := floatOption(opts, "minimum"); ok {
		schema.Minimum = &v
	}
	if v, ok := floatOption(opts, "maximum"); ok {
		schema.Maximum = &v
	}
	if v, ok := intOption(opts, "minItems"); ok {
		schema.MinItems = &v
	}
	if v, ok := intOption(opts, "maxItems"); ok {
		schema.MaxItems = &v
	}

	return nil
}

func intOption(opts map[string]string, key string) (int, bool) {
	raw, ok := opts[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func floatOption(opts map[string]string, key string) (float64, bool) {
	raw, ok := opts[key]
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// tagOptions parses a jsonschema tag string into an option map.
// Format: "opt1,opt2=value2,opt3=value3". Commas inside an enum value list
// stay with the value: a comma only starts a new option when the following
// segment is itself a key=value pair or a known boolean option.
func tagOptions(tag string) map[string]string {
	options := make(map[string]string)
	if tag == "" {
		return options
	}

	for _, part := range splitTagParts(tag) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if idx := strings.Index(part, "="); idx > 0 {
			options[part[:idx]] = part[idx+1:]
		} else {
			options[part] = ""
		}
	}

	return options
}

func splitTagParts(tag string) []string {
	var parts []string
	var current strings.Builder
	inValue := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]

		switch {
		case ch == '=':
			inValue = true
			current.WriteByte(ch)

		case ch == ',' && !inValue:
			parts = append(parts, current.String())
			current.Reset()

		case ch == ',' && inValue:
			next := tag[i+1:]
			if comma := strings.Index(next, ","); comma >= 0 {
				next = next[:comma]
			}
			next = strings.TrimSpace(next)

			if next == "required" || isKeyValueSegment(next) {
				parts = append(parts, current.String())
				current.Reset()
				inValue = false
				continue
			}

			// Comma belongs to the current value (enum list).
			current.WriteByte(ch)

		default:
			current.WriteByte(ch)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

func isKeyValueSegment(segment string) bool {
	eq := strings.Index(segment, "=")
	if eq <= 0 {
		return false
	}
	for _, c := range segment[:eq] {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

func parseDefaultValue(value string, t reflect.Type) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return value
	case reflect.Bool:
		return value == "true"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case reflect.Float32, reflect.Float64:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return value
}
