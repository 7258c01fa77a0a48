package service

import (
	"sync"

	"github.com/promptdhq/promptd/llm"
	"github.com/rs/zerolog"
)

// ServiceRegistry holds at most one constructed client for its owner.
// It is safe for concurrent use. Prefer constructing and passing a registry
// explicitly; the package-level functions below exist for the embedding
// application, which genuinely needs one shared instance.
type ServiceRegistry struct {
	mu     sync.RWMutex
	client llm.Client
}

// NewServiceRegistry creates an empty ServiceRegistry.
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{}
}

// Initialize constructs a client from cfg via the factory and installs it,
// replacing any previous instance. The replaced instance is not
// decommissioned; clients hold no resources between calls.
func (r *ServiceRegistry) Initialize(cfg llm.Config, logger zerolog.Logger) error {
	client, err := NewClient(cfg, logger)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.client = client
	return nil
}

// Client returns the installed instance. Repeated calls without an
// intervening Initialize or Reset return the identical instance, so callers
// may rely on it for connection reuse.
func (r *ServiceRegistry) Client() (llm.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.client == nil {
		return nil, llm.NewNotInitializedError()
	}
	return r.client, nil
}

// Reset clears the installed instance. Subsequent Client calls fail until
// Initialize is called again.
func (r *ServiceRegistry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.client = nil
}

// defaultRegistry backs the process-wide lifecycle functions.
var defaultRegistry = NewServiceRegistry()

// InitializeLLMService constructs and installs the process-wide client.
func InitializeLLMService(cfg llm.Config, logger zerolog.Logger) error {
	return defaultRegistry.Initialize(cfg, logger)
}

// LLMService returns the process-wide client, failing if
// InitializeLLMService has not been called.
func LLMService() (llm.Client, error) {
	return defaultRegistry.Client()
}

// ResetLLMService clears the process-wide client.
func ResetLLMService() {
	defaultRegistry.Reset()
}
