// Package redis provides a Redis implementation of store.Table. Each entity is
// stored as a JSON string under "<prefix>:<id>" and a sorted set keeps the
// insertion order used by List.
package redis
