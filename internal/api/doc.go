// Package api handles incoming HTTP requests, request decoding and response
// formatting. It acts as an adapter between external clients and the card
// and auth services, translating service failures into HTTP status codes
// and safe messages.
package api
