package domain

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// matrixDocument is the YAML layout of a route matrix file:
//
//	routes:
//	  - prefix: /configuracion
//	    roles: [admin]
//	  - prefix: /pacientes
//	    roles: [coord, recepcion, medico]
type matrixDocument struct {
	Routes []matrixRoute `yaml:"routes"`
}

type matrixRoute struct {
	Prefix string   `yaml:"prefix"`
	Roles  []string `yaml:"roles,flow"`
}

// ParseRouteMatrix reads a YAML route matrix. Role names are lower-cased and trimmed but
// not coerced: an unknown role in configuration is an error.
func ParseRouteMatrix(r io.Reader) (*RouteMatrix, error) {
	var doc matrixDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMatrix, err)
	}
	if len(doc.Routes) == 0 {
		return nil, fmt.Errorf("%w: no routes declared", ErrInvalidMatrix)
	}

	rules := make([]RouteRule, 0, len(doc.Routes))
	for _, route := range doc.Routes {
		roles := make([]Role, 0, len(route.Roles))
		for _, raw := range route.Roles {
			roles = append(roles, Role(strings.ToLower(strings.TrimSpace(raw))))
		}
		rules = append(rules, RouteRule{Prefix: strings.TrimSpace(route.Prefix), Roles: roles})
	}

	return NewRouteMatrix(rules)
}

// LoadRouteMatrix returns the matrix declared in path, or the built-in matrix when path
// is empty.
func LoadRouteMatrix(path string) (*RouteMatrix, error) {
	if path == "" {
		return DefaultRouteMatrix(), nil
	}

	f, err := os.Open(path) //nolint:gosec // operator supplied configuration path
	if err != nil {
		return nil, fmt.Errorf("failed to open route matrix file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseRouteMatrix(f)
}

// WriteRouteMatrix writes m in the layout ParseRouteMatrix reads.
func WriteRouteMatrix(w io.Writer, m *RouteMatrix) error {
	doc := matrixDocument{Routes: make([]matrixRoute, 0, len(m.rules))}
	for _, rule := range m.rules {
		doc.Routes = append(doc.Routes, matrixRoute{Prefix: rule.Prefix, Roles: RoleStrings(rule.Roles)})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode route matrix: %w", err)
	}
	return enc.Close()
}
