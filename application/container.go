package application

import (
	"fmt"

	"go.uber.org/dig"

	"github.com/rios0rios0/reqdiff/config"
	"github.com/rios0rios0/reqdiff/domain"
	"github.com/rios0rios0/reqdiff/infrastructure/walker"
)

// RegisterProviders registers all extraction components on the container.
func RegisterProviders(container *dig.Container, cfg *config.Config) error {
	providers := []interface{}{
		func() *domain.PathClassifier {
			return domain.NewPathClassifier(cfg.AllowedManifests, cfg.ExcludedPrefixes)
		},
		func() domain.DiffWalker { return walker.New() },
		domain.NewReconciler,
		NewExtractService,
	}
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("failed to register provider: %w", err)
		}
	}
	return nil
}

// BuildExtractService wires a container from the configuration and resolves
// the extract service out of it.
func BuildExtractService(cfg *config.Config) (*ExtractService, error) {
	container := dig.New()
	if err := RegisterProviders(container, cfg); err != nil {
		return nil, err
	}

	var svc *ExtractService
	if err := container.Invoke(func(s *ExtractService) { svc = s }); err != nil {
		return nil, fmt.Errorf("failed to resolve extract service: %w", err)
	}
	return svc, nil
}
