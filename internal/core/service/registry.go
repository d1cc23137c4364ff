package service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/olusolaa/visual-drift-detector/internal/core/ports"
	"github.com/olusolaa/visual-drift-detector/internal/errors"
)

type ComponentRegistry struct {
	mu             sync.RWMutex
	suiteProviders map[string]ports.SuiteProvider
	reporters      map[string]ports.Reporter
	publishers     map[string]ports.ArtifactPublisher
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		suiteProviders: make(map[string]ports.SuiteProvider),
		reporters:      make(map[string]ports.Reporter),
		publishers:     make(map[string]ports.ArtifactPublisher),
	}
}

func (r *ComponentRegistry) RegisterSuiteProvider(provider ports.SuiteProvider) error {
	if provider == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil suite provider")
	}
	providerType := provider.Type()
	if providerType == "" {
		return errors.New(errors.CodeInternal, "suite provider type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suiteProviders[providerType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("suite provider type '%s' already registered", providerType))
	}
	r.suiteProviders[providerType] = provider
	return nil
}

func (r *ComponentRegistry) GetSuiteProvider(providerType string) (ports.SuiteProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.suiteProviders[providerType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("suite provider type '%s' not found", providerType))
	}
	return provider, nil
}

func (r *ComponentRegistry) RegisterReporter(reporter ports.Reporter) error {
	if reporter == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil reporter")
	}
	reporterType := reporter.Type()
	if reporterType == "" {
		return errors.New(errors.CodeInternal, "reporter type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reporters[reporterType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("reporter type '%s' already registered", reporterType))
	}
	r.reporters[reporterType] = reporter
	return nil
}

func (r *ComponentRegistry) GetReporter(reporterType string) (ports.Reporter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reporter, exists := r.reporters[reporterType]
	if !exists {
		return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("reporter type '%s' not found", reporterType))
	}
	return reporter, nil
}

func (r *ComponentRegistry) RegisterArtifactPublisher(publisher ports.ArtifactPublisher) error {
	if publisher == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil artifact publisher")
	}
	publisherType := publisher.Type()
	if publisherType == "" {
		return errors.New(errors.CodeInternal, "artifact publisher type cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.publishers[publisherType]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("artifact publisher type '%s' already registered", publisherType))
	}
	r.publishers[publisherType] = publisher
	return nil
}

// ArtifactPublishers returns every registered publisher ordered by type.
func (r *ComponentRegistry) ArtifactPublishers() []ports.ArtifactPublisher {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.publishers))
	for t := range r.publishers {
		types = append(types, t)
	}
	sort.Strings(types)

	out := make([]ports.ArtifactPublisher, 0, len(types))
	for _, t := range types {
		out = append(out, r.publishers[t])
	}
	return out
}
