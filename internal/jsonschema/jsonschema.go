package jsonschema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Schema is the subset of JSON Schema used to describe tool parameters.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`

	// AdditionalProperties is either a bool or a *Schema
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	Default              any                `json:"default,omitempty"`
	Enum                 []any              `json:"enum,omitempty"`
	Ref                  string             `json:"$ref,omitempty"`
	Defs                 map[string]*Schema `json:"$defs,omitempty"`
}

// GenerateJSONSchema derives a schema from T using its json and jsonschema
// struct tags. Fields are required unless they are pointers or tagged
// omitempty; `jsonschema:"required"` forces them back in.
//
//	type weatherArgs struct {
//	    City string `json:"city" jsonschema:"description=City name"`
//	    Unit string `json:"unit,omitempty" jsonschema:"enum=celsius,enum=fahrenheit"`
//	}
//	schema, err := jsonschema.GenerateJSONSchema[weatherArgs]()
//
// Self-referencing types are emitted once under $defs and referenced with $ref.
func GenerateJSONSchema[T any]() (*Schema, error) {
	generator := &generator{
		visiting: make(map[reflect.Type]bool),
		defs:     make(map[string]*Schema),
	}

	schema, err := generator.schemaFor(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	if len(generator.defs) > 0 {
		schema.Defs = generator.defs
	}
	return schema, nil
}

type generator struct {
	visiting map[reflect.Type]bool
	defs     map[string]*Schema
}

func (g *generator) schemaFor(t reflect.Type) (*Schema, error) {
	switch t.Kind() {
	case reflect.Pointer:
		return g.schemaFor(t.Elem())
	case reflect.String:
		return &Schema{Type: "string"}, nil
	case reflect.Bool:
		return &Schema{Type: "boolean"}, nil
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}, nil
	case reflect.Slice, reflect.Array:
		items, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case reflect.Map:
		values, err := g.schemaFor(t.Elem())
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "object", AdditionalProperties: values}, nil
	case reflect.Struct:
		return g.structSchema(t)
	default:
		return &Schema{Type: "object"}, nil
	}
}

func (g *generator) structSchema(t reflect.Type) (*Schema, error) {
	defName := strings.ToLower(t.Name())
	if g.visiting[t] {
		if defName == "" {
			return &Schema{Type: "object"}, nil
		}
		g.defs[defName] = nil
		return &Schema{Ref: "#/$defs/" + defName}, nil
	}
	g.visiting[t] = true
	defer delete(g.visiting, t)

	schema := &Schema{Type: "object", Properties: make(map[string]*Schema)}
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := parseJSONTag(field)
		if skip {
			continue
		}

		fieldSchema, err := g.schemaFor(field.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}

		requiredByTag := false
		if fieldSchema.Ref == "" {
			requiredByTag, err = applyJSONSchemaTag(field.Type, field.Tag.Get("jsonschema"), fieldSchema)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
		}

		schema.Properties[name] = fieldSchema
		if (field.Type.Kind() != reflect.Pointer && !omitEmpty) || requiredByTag {
			schema.Required = append(schema.Required, name)
		}
	}

	// A placeholder means a nested field referenced this type
	if placeholder, referenced := g.defs[defName]; referenced && placeholder == nil {
		g.defs[defName] = &Schema{Type: schema.Type, Properties: schema.Properties, Required: schema.Required}
	}
	return schema, nil
}

func parseJSONTag(field reflect.StructField) (name string, omitEmpty bool, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name = field.Name
	tagName, options, _ := strings.Cut(tag, ",")
	if tagName != "" {
		name = tagName
	}
	return name, strings.Contains(options, "omitempty"), false
}

// applyJSONSchemaTag applies description=, enum= and required items from a
// jsonschema tag. Enum values are converted to the field's kind. Descriptions
// cannot contain commas.
func applyJSONSchemaTag(fieldType reflect.Type, tag string, schema *Schema) (bool, error) {
	if tag == "" {
		return false, nil
	}

	for fieldType.Kind() == reflect.Pointer {
		fieldType = fieldType.Elem()
	}

	required := false
	for _, item := range strings.Split(tag, ",") {
		key, value, hasValue := strings.Cut(item, "=")
		if !hasValue {
			if key == "required" {
				required = true
			}
			continue
		}

		switch key {
		case "description":
			schema.Description = value
		case "enum":
			enumValue, err := convertEnumValue(fieldType, value)
			if err != nil {
				return false, err
			}
			schema.Enum = append(schema.Enum, enumValue)
		}
	}
	return required, nil
}

func convertEnumValue(fieldType reflect.Type, value string) (any, error) {
	switch fieldType.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to int64 failed: %w", value, err)
		}
		return parsed, nil
	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to float64 failed: %w", value, err)
		}
		return parsed, nil
	case reflect.Bool:
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %v to bool failed: %w", value, err)
		}
		return parsed, nil
	default:
		return nil, fmt.Errorf("enum tag unsupported for field type: %v", fieldType)
	}
}
