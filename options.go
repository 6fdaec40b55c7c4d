package tmx

import (
	"github.com/jacoelho/xsd"
	"github.com/jacoelho/xsd/pkg/xmlstream"
	"go.uber.org/zap"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved() int {
	if !o.set {
		return 0
	}
	return o.value
}

// ParseOptions configures map parsing. The zero value is valid.
type ParseOptions struct {
	schema       *xsd.Schema
	logger       *zap.Logger
	maxDepth     intOption
	maxAttrs     intOption
	maxTokenSize intOption
}

type resolvedParseOptions struct {
	schema     *xsd.Schema
	logger     *zap.Logger
	xmlOptions []xmlstream.Option
}

// NewParseOptions returns a default, valid options value.
func NewParseOptions() ParseOptions {
	return ParseOptions{}
}

// Validate validates option values.
func (o ParseOptions) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithMaxDepth sets the XML element nesting limit (0 uses default).
func (o ParseOptions) WithMaxDepth(value int) ParseOptions {
	o.maxDepth = intOption{value: value, set: true}
	return o
}

// WithMaxAttrs sets the per-element attribute limit (0 uses default).
func (o ParseOptions) WithMaxAttrs(value int) ParseOptions {
	o.maxAttrs = intOption{value: value, set: true}
	return o
}

// WithMaxTokenSize sets the maximum size of one XML token in bytes (0 uses default).
func (o ParseOptions) WithMaxTokenSize(value int) ParseOptions {
	o.maxTokenSize = intOption{value: value, set: true}
	return o
}

// WithSchema validates the map document against schema before parsing it.
// External tileset files are not validated.
func (o ParseOptions) WithSchema(schema *xsd.Schema) ParseOptions {
	o.schema = schema
	return o
}

// WithLogger sets the logger used for debug output. Nil disables logging.
func (o ParseOptions) WithLogger(logger *zap.Logger) ParseOptions {
	o.logger = logger
	return o
}

func (o ParseOptions) withDefaults() (resolvedParseOptions, error) {
	limits, err := resolveXMLParseLimits(
		o.maxDepth.resolved(),
		o.maxAttrs.resolved(),
		o.maxTokenSize.resolved(),
	)
	if err != nil {
		return resolvedParseOptions{}, err
	}
	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return resolvedParseOptions{
		schema:     o.schema,
		logger:     logger,
		xmlOptions: limits.options(),
	}, nil
}
