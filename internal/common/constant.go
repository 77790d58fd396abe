// Package common contains shared constants and sentinel errors used across
// the civigo client and the development server.
package common

const (
	// AuthorizationHeaderName carries the bearer token on REST calls.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the JWT in the Authorization header.
	BearerPrefix = "Bearer "

	// ItemTypeHeaderName selects the entry group (details or deductions)
	// on the subwork item endpoints.
	ItemTypeHeaderName = "X-Item-Type"
)
