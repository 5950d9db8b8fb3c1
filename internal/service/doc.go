// Package service contains the application-specific use cases and business
// logic. It orchestrates the card repositories (defined in internal/store)
// and converts their outcomes into the closed failure taxonomy of
// internal/failure, so no raw storage error or panic leaves a service call.
//
// Services receive their dependencies through constructor injection and
// depend on repository interfaces, never on a specific storage engine.
package service
