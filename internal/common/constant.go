// Package common contains shared constants and sentinel errors used across
// English High Q components.
package common

// BearerPrefix is the scheme prefix of the Authorization header value that
// carries the access token on protected requests.
const BearerPrefix = "Bearer "
