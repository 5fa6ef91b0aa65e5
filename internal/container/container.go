// Package container provides dependency injection for the pdf-order application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"fjacquet/pdf-order/internal/config"
	"fjacquet/pdf-order/internal/dateutils"
	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/order"
	"fjacquet/pdf-order/internal/pdftable"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	clock     dateutils.Clock
	extractor *pdftable.Extractor
	builder   *order.Builder
	writer    *order.Writer
}

type options struct {
	logger logging.Logger
	opener pdftable.Opener
	clock  dateutils.Clock
}

// Option overrides a dependency, mostly for tests.
type Option func(*options)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithOpener replaces the PDF engine.
func WithOpener(opener pdftable.Opener) Option {
	return func(o *options) { o.opener = opener }
}

// WithClock replaces the system clock.
func WithClock(clock dateutils.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))
	}
	opener := o.opener
	if opener == nil {
		opener = pdftable.NewLibraryOpener()
	}
	clock := o.clock
	if clock == nil {
		clock = dateutils.SystemClock
	}

	profile := cfg.Profile()
	c := &Container{
		logger:    logger,
		config:    cfg,
		clock:     clock,
		extractor: pdftable.NewExtractor(opener, profile, logger),
		builder:   order.NewBuilder(cfg.BuilderOptions(), logger),
		writer:    order.NewWriter(cfg.Order.OutputDir, logger),
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldProfile, Value: profile.Name},
		logging.Field{Key: logging.FieldPolicy, Value: cfg.Order.RowPolicy},
		logging.Field{Key: logging.FieldCustomer, Value: cfg.Order.CustomerCode})

	return c, nil
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetExtractor returns the table extractor.
func (c *Container) GetExtractor() *pdftable.Extractor {
	return c.extractor
}

// GetBuilder returns the order builder.
func (c *Container) GetBuilder() *order.Builder {
	return c.builder
}

// GetWriter returns the order file writer.
func (c *Container) GetWriter() *order.Writer {
	return c.writer
}

// OrderDate returns the date the order is stamped with.
func (c *Container) OrderDate() time.Time {
	return c.config.OrderDate(c.clock)
}
