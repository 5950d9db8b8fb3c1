// Package memory provides an in-process implementation of store.Table.
// It is the default storage driver and the backend used by service and API tests.
package memory
