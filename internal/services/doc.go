// Package services provides external service integrations for the pass server.
//
// This package abstracts external dependencies so that local development can run without them
// while production uses managed services. Each service is defined as an interface with
// implementations selected via configuration.
package services
