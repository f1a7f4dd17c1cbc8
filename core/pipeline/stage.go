// ABOUTME: Stage contract and shared context bag for the analysis pipeline
// ABOUTME: Stages run strictly in sequence and exchange side data through Context

package pipeline

import (
	"context"
	"sync"
)

// Stage is one step of the analysis pipeline. A stage receives the previous
// stage's output, may read and write the shared Context, and returns its own
// output for the next stage.
type Stage interface {
	// Name identifies the stage in logs.
	Name() string

	// Process runs the stage. Returning an error aborts the run.
	Process(ctx context.Context, input interface{}, pctx *Context) (interface{}, error)
}

// Context is a keyed bag shared by the stages of one run. Stages use it for
// side data that is not part of the main input/output flow. Safe for
// concurrent use, although stages within a run never overlap.
type Context struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

// NewContext returns an empty context bag.
func NewContext() *Context {
	return &Context{data: make(map[string]interface{})}
}

// Set stores value under key.
func (c *Context) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

// Get retrieves the value stored under key, with ok reporting presence.
func (c *Context) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[key]
	return v, ok
}

// Contains reports whether key is present.
func (c *Context) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.data[key]
	return ok
}

// Remove deletes key from the bag.
func (c *Context) Remove(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Well-known context keys shared between stages.
const (
	ctxKeyTerm     = "term"
	ctxKeyPage     = "page"
	ctxKeyFeatures = "features"
	ctxKeyIntent   = "intent"
	ctxKeyGap      = "gap"
)
