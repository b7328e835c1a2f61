// Package core contains the business logic for the brunch article
// collection pipeline. It is designed to be framework-agnostic and can be
// used independently of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (ArticleRequest, ArticleRecord, RunResult, ...)
// - extract: Field extraction with ordered fallback strategies
// - scrape: Sequential batch orchestration with throttling and progress events
// - textproc: Text normalization and document assembly
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (fetcher, cache, logger)
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
//	    "brunch-scraper-api/core/interfaces"
//	    "brunch-scraper-api/core/scrape"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:  myCache,  // implements interfaces.Cache
//	    Logger: myLogger, // implements interfaces.Logger
//	}
//
//	// Create the orchestrator with a fetcher factory
//	service := scrape.NewService(deps, newFetcher, scrape.DefaultConfig())
//
//	// Run a collection
//	result, err := service.Run(ctx, req, func(e domain.ProgressEvent) {
//	    // stream progress to the client
//	})
package core
