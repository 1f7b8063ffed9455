package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is stripped from the Authorization header value when present.
const BearerPrefix = "Bearer "

// DefaultRole is assigned to users registered without an explicit role.
const DefaultRole = "user"

// DefaultOperationStatus is the initial status of every recorded operation.
const DefaultOperationStatus = "pending"

// DefaultListLimit bounds operation listings when the caller gives no limit.
const DefaultListLimit = 10
