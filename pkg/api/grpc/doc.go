// Package grpc exposes the standard grpc.health.v1.Health service so that
// orchestrators probing over gRPC see the same liveness as GET /health.
package grpc
