// Package server exposes the conversion catalog over HTTP.
//
// The API is read-only: it lists registered data interface formats,
// recorded conversion runs, and archives present in object storage.
// Backends are optional; endpoints whose backend is not configured
// answer 503 rather than disappearing from the route table.
//
// # Configuration
//
// The Config struct defines the HTTP port and API key. An empty API key
// disables authentication.
package server
