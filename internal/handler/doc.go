// Package handler provides the HTTP surface of asetgraph.
//
// Routes:
//
//	POST /graphql   GraphQL queries and mutations (GET accepted for queries)
//	GET  /events    Server-Sent Events stream of store changes
//	GET  /metrics   Prometheus metrics
//	GET  /healthz   liveness probe
//
// The router is gin with recovery, request logging through zap and optional
// CORS. The service.DataSources built at startup is attached to every GraphQL
// request context, where resolvers pick it up.
package handler
