// Package postprocessors provides transcript clean-up stages run after
// normalisation and before analysis.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/vmt/internal/core/domain"
	"github.com/custodia-labs/vmt/internal/core/ports/driven"
	"github.com/custodia-labs/vmt/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline runs clean-up stages in order. The first stage is handed nil
// lines and splits the transcript; later stages rewrite what they receive.
type Pipeline struct {
	stages []driven.PostProcessor
}

// NewPipeline creates a pipeline over stages.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Process cleans t and returns its lines. It stops between stages when
// ctx is cancelled.
func (p *Pipeline) Process(ctx context.Context, t *domain.Transcript) ([]string, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil transcript", domain.ErrInvalidInput)
	}

	var lines []string
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := stage.Process(ctx, t, lines)
		if err != nil {
			return nil, fmt.Errorf("processor %s: %w", stage.Name(), err)
		}
		logger.Debug("cleanup %s: %d -> %d lines", stage.Name(), len(lines), len(out))
		lines = out
	}
	return lines, nil
}

// Add appends a stage.
func (p *Pipeline) Add(stage driven.PostProcessor) {
	p.stages = append(p.stages, stage)
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.stages)
}

// Names lists the stages in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, len(p.stages))
	for i, stage := range p.stages {
		names[i] = stage.Name()
	}
	return names
}
