// Package gql serves the GraphQL schema. Resolvers are thin: they read the
// request's service.DataSources from the context and forward to it.
package gql

import (
	_ "embed"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// SchemaSDL returns the schema definition
func SchemaSDL() string {
	return schemaSDL
}

// NewSchema parses the schema and binds the root resolver
func NewSchema() (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSDL, &Resolver{},
		graphql.MaxParallelism(8),
	)
}
