// Package sections turns the summary table and curves into the ordered report
// sections.
package sections

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/fastplong-multireport/internal/charts"
)

// DefaultManager implements the Manager interface
type DefaultManager struct {
	builders map[string]Builder
	order    []string
	renderer charts.Renderer
	logger   logrus.FieldLogger
}

// NewManager creates a new section manager drawing charts with renderer
func NewManager(renderer charts.Renderer, logger logrus.FieldLogger) *DefaultManager {
	return &DefaultManager{
		builders: make(map[string]Builder),
		renderer: renderer,
		logger:   logger.WithField("component", "sections"),
	}
}

// RegisterBuilder appends a builder. Sections are emitted in registration order.
func (m *DefaultManager) RegisterBuilder(builder Builder) error {
	anchor := builder.Anchor()
	if anchor == "" {
		return fmt.Errorf("builder must specify a non-empty anchor")
	}

	if _, exists := m.builders[anchor]; exists {
		return fmt.Errorf("builder for section %s already registered", anchor)
	}

	m.builders[anchor] = builder
	m.order = append(m.order, anchor)
	m.logger.WithField("section", anchor).Debug("Registered section builder")

	return nil
}

// Build runs every builder in order. A builder with nothing to show is
// skipped; any other failure aborts the whole report.
func (m *DefaultManager) Build(in Input) ([]Section, error) {
	out := make([]Section, 0, len(m.order))

	for _, anchor := range m.order {
		builder := m.builders[anchor]

		section, err := builder.Build(in, m.renderer)
		if errors.Is(err, charts.ErrNoData) {
			section, err = nil, nil
		}

		if err != nil {
			return nil, fmt.Errorf("failed to build section %s: %w", anchor, err)
		}

		if section == nil {
			m.logger.WithField("section", anchor).Debug("Section has no data, omitting")

			continue
		}

		section.Anchor = anchor
		if section.Title == "" {
			section.Title = builder.Title()
		}

		out = append(out, *section)
	}

	m.logger.WithField("sections", len(out)).Debug("Built report sections")

	return out, nil
}

// RegisterDefaultBuilders registers the standard report sections in document order
func (m *DefaultManager) RegisterDefaultBuilders() error {
	builders := []Builder{
		SummaryTableBuilder{},
		QualityCurveBuilder{},
		ReadCountsBuilder{},
		RetentionBuilder{},
		MeanLengthBuilder{},
		QualityRatesBuilder{},
		ScatterBuilder{},
		FilteringBuilder{},
	}

	for _, builder := range builders {
		if err := m.RegisterBuilder(builder); err != nil {
			return fmt.Errorf("failed to register builder %s: %w", builder.Anchor(), err)
		}
	}

	return nil
}
