// Package domain contains the core business entities of the kanban board and
// the self-validation rules they enforce. It is independent of any specific
// storage engine or delivery mechanism.
package domain
