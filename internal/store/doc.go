// Package store defines the persistence abstractions used by the service
// layer. A Table is the raw storage engine for one entity type; the
// ReadRepository and WriteRepository wrap a Table with Option and Choice
// outcomes and refuse to write entities that fail self-validation.
package store
