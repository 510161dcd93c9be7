package sample

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ethpandaops/fastplong-multireport/internal/fastplong"
)

// Collection implements the Repository interface as an insertion-ordered,
// in-memory map keyed by sample name.
type Collection struct {
	order   []string
	samples map[string]Sample
	mu      sync.RWMutex
	logger  logrus.FieldLogger
}

// NewCollection creates an empty sample collection
func NewCollection(logger logrus.FieldLogger) *Collection {
	return &Collection{
		samples: make(map[string]Sample),
		logger:  logger.WithField("component", "sample_collection"),
	}
}

// Put stores a sample. A name that is already present keeps its position but
// takes the new report (last write wins), and the overwrite is logged.
func (c *Collection) Put(name, path string, report *fastplong.Report) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, exists := c.samples[name]; exists {
		c.logger.WithFields(logrus.Fields{
			"sample":   name,
			"previous": existing.Path,
			"path":     path,
		}).Warn("Duplicate sample name, later report replaces earlier one")
	} else {
		c.order = append(c.order, name)
	}

	c.samples[name] = Sample{Name: name, Path: path, Report: report}
}

// Samples returns the samples in insertion order
func (c *Collection) Samples() []Sample {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Sample, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.samples[name])
	}

	return out
}

// Len returns the number of distinct samples
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.order)
}
