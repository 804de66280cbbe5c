// Package core contains the business logic for the VOD search API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Contains pure domain models (Source, VideoResult)
// - source: Upstream source client for search and detail lookups
// - aggregate: Fan-out coordinator racing all sources concurrently
// - rank: Relevance ranking of merged results
// - policy: Category denylist filtering
// - registry: Source list, per-user availability, and policy settings
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "vodsearch-api/core/aggregate"
//	    "vodsearch-api/core/interfaces"
//	    "vodsearch-api/core/source"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create the coordinator
//	client := source.NewClient(deps)
//	coordinator := aggregate.NewCoordinator(client, deps)
//
//	// Fan a query out to every source
//	outcomes := coordinator.Dispatch(ctx, sources, "avatar")
package core
