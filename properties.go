package tmx

import (
	"fmt"
	"strconv"

	tmxerrors "github.com/jacoelho/tmx/errors"
	"github.com/jacoelho/tmx/internal/attr"
	"github.com/jacoelho/tmx/internal/dispatch"
	"github.com/jacoelho/tmx/internal/xmlevent"
)

// Properties holds custom properties by name.
type Properties map[string]PropertyValue

// PropertyValue is one typed property value. The set of implementations is closed.
type PropertyValue interface {
	propertyType() string
}

type (
	BoolValue   bool
	FloatValue  float64
	IntValue    int
	ColorValue  Color
	StringValue string
	FileValue   string
	// ObjectValue references an object by id; 0 means no object.
	ObjectValue uint32
)

// ClassValue is a property of a custom class type with its own members.
type ClassValue struct {
	Properties Properties
	Type       string
}

func (BoolValue) propertyType() string   { return "bool" }
func (FloatValue) propertyType() string  { return "float" }
func (IntValue) propertyType() string    { return "int" }
func (ColorValue) propertyType() string  { return "color" }
func (StringValue) propertyType() string { return "string" }
func (FileValue) propertyType() string   { return "file" }
func (ObjectValue) propertyType() string { return "object" }
func (ClassValue) propertyType() string  { return "class" }

// TypeOf returns the TMX type name of v.
func TypeOf(v PropertyValue) string {
	if v == nil {
		return ""
	}
	return v.propertyType()
}

func (p *parser) parseProperties() (Properties, error) {
	props := Properties{}
	err := p.w.Walk("properties", dispatch.Handlers{
		"property": func(list []xmlevent.Attr) error {
			name, v, err := p.parseProperty(list)
			if err != nil {
				return err
			}
			props[name] = v
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return props, nil
}

func (p *parser) parseProperty(list []xmlevent.Attr) (string, PropertyValue, error) {
	var (
		name, class string
		typ         = "string"
		value       *string
	)
	err := attr.Extract(list, "property must have a name with correct type",
		attr.Optional("type", &typ, attr.String),
		attr.Optional("value", &value, attr.Ptr(attr.String)),
		attr.Optional("propertytype", &class, attr.String),
		attr.Required("name", &name, attr.String),
	)
	if err != nil {
		return "", nil, err
	}

	var members Properties
	text, err := p.w.WalkText("property", dispatch.Handlers{
		"properties": func([]xmlevent.Attr) error {
			nested, err := p.parseProperties()
			if err != nil {
				return err
			}
			members = nested
			return nil
		},
	})
	if err != nil {
		return "", nil, err
	}

	if typ == "class" {
		if members == nil {
			members = Properties{}
		}
		return name, ClassValue{Type: class, Properties: members}, nil
	}
	raw := text
	if value != nil {
		raw = *value
	}
	v, err := newPropertyValue(typ, raw)
	if err != nil {
		return "", nil, err
	}
	return name, v, nil
}

func newPropertyValue(typ, raw string) (PropertyValue, error) {
	switch typ {
	case "string":
		return StringValue(raw), nil
	case "file":
		return FileValue(raw), nil
	case "bool":
		switch raw {
		case "true", "1":
			return BoolValue(true), nil
		case "false", "0":
			return BoolValue(false), nil
		}
	case "int":
		if n, err := strconv.Atoi(raw); err == nil {
			return IntValue(n), nil
		}
	case "float":
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return FloatValue(f), nil
		}
	case "object":
		if n, err := strconv.ParseUint(raw, 10, 32); err == nil {
			return ObjectValue(n), nil
		}
	case "color":
		if raw == "" {
			return ColorValue{}, nil
		}
		if c, err := ParseColor(raw); err == nil {
			return ColorValue(c), nil
		}
	default:
		return nil, tmxerrors.Newf(tmxerrors.ParseValue, "unknown property type %q", typ)
	}
	return nil, tmxerrors.Wrap(tmxerrors.MalformedAttributes,
		fmt.Errorf("value %q is not a valid %s", raw, typ), "property value does not match its type")
}
