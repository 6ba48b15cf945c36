// Package api implements the HTTP client for the storeops backend.
package api
