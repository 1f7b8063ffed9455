// Package client talks to the opsapi REST API on behalf of the CLI.
//
// HTTPClient keeps the bearer token returned by Login in memory and sends
// it with every protected call. Failed calls come back as *APIError, which
// unwraps to ErrUnauthorized or ErrConflict where the status code says so;
// transport failures wrap ErrUnavailable.
package client
