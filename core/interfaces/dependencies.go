// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the external collaborators required by the analysis pipeline

package interfaces

// Dependencies holds all external collaborators required by the core
// analysis logic. Constructor-injected; core packages carry no globals.
type Dependencies struct {
	// Cache provides keyed storage with TTL for raw results and analyses
	Cache Cache

	// Provider fetches raw results pages
	Provider ResultsProvider

	// HTTPClient provides HTTP request functionality for providers
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
