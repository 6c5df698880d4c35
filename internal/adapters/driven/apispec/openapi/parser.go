// Package openapi parses OpenAPI documents written in YAML or JSON.
package openapi

import (
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/pokeelt/internal/core/domain"
	"github.com/custodia-labs/pokeelt/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.SpecParser = (*Parser)(nil)

// Parser decodes OpenAPI and Swagger documents.
type Parser struct{}

// NewParser creates a new parser.
func NewParser() *Parser {
	return &Parser{}
}

// document holds the fields of interest.
type document struct {
	OpenAPI string `yaml:"openapi"`
	Swagger string `yaml:"swagger"`
	Info    struct {
		Title   string `yaml:"title"`
		Version string `yaml:"version"`
	} `yaml:"info"`
	Paths map[string]any `yaml:"paths"`
}

// Parse decodes data. JSON is accepted since it is a subset of YAML.
// Any mapping document is accepted; the version fields are informational and
// may be empty. Only malformed or non-mapping content is an error.
func (p *Parser) Parse(data []byte) (*domain.APISpec, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ParseError{Reason: "malformed spec document", Err: err}
	}
	if raw == nil {
		return nil, &domain.ParseError{Reason: "empty spec document"}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ParseError{Reason: "malformed spec document", Err: err}
	}

	version := doc.OpenAPI
	if version == "" {
		version = doc.Swagger
	}

	paths := make([]string, 0, len(doc.Paths))
	for path := range doc.Paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return &domain.APISpec{
		OpenAPI:  version,
		Title:    doc.Info.Title,
		Version:  doc.Info.Version,
		Paths:    paths,
		Document: raw,
	}, nil
}
