package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ArowuTest/bridgetunes-raffle/internal/models"
	"github.com/ArowuTest/bridgetunes-raffle/internal/report"
	"github.com/ArowuTest/bridgetunes-raffle/internal/repositories"
	"golang.org/x/exp/slog"
)

// TemplateServiceImpl stores report templates
type TemplateServiceImpl struct {
	templateRepo repositories.TemplateRepository
	settings     DrawSettings
}

// NewTemplateService creates a new TemplateServiceImpl
func NewTemplateService(templateRepo repositories.TemplateRepository, settings DrawSettings) *TemplateServiceImpl {
	return &TemplateServiceImpl{templateRepo: templateRepo, settings: settings}
}

// Save upserts the template. Slot count mismatches are reported, not rejected.
func (s *TemplateServiceImpl) Save(ctx context.Context, template *models.Template) ([]string, error) {
	template.Name = strings.TrimSpace(template.Name)
	if template.Name == "" {
		return nil, fmt.Errorf("template name is required")
	}
	if err := s.templateRepo.Upsert(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	warnings := report.Count(template.Content, s.settings.Tiers, s.settings.Layout).Mismatches(s.settings.Tiers)
	slog.Info("Template saved", "name", template.Name, "warnings", len(warnings))
	return warnings, nil
}

// Get finds a template by name
func (s *TemplateServiceImpl) Get(ctx context.Context, name string) (*models.Template, error) {
	return s.templateRepo.FindByName(ctx, name)
}

// List returns all templates
func (s *TemplateServiceImpl) List(ctx context.Context) ([]*models.Template, error) {
	return s.templateRepo.FindAll(ctx)
}
