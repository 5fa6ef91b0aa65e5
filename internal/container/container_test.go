package container

import (
	"testing"
	"time"

	"fjacquet/pdf-order/internal/config"
	"fjacquet/pdf-order/internal/layout"
	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/pdftable"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	p := layout.DefaultProfile()
	return &config.Config{
		Log: config.LogConfig{Level: "info", Format: "text"},
		CSV: config.CSVConfig{Delimiter: ","},
		Order: config.OrderConfig{
			CustomerCode: "1112L",
			DeliveryDays: 10,
			OutputDir:    ".",
			RowPolicy:    "require-quantity",
		},
		Layout: config.LayoutConfig{
			Name:            p.Name,
			FirstPageTop:    p.FirstPageTop,
			ContinuationTop: p.ContinuationTop,
			Bottom:          p.Bottom,
			Columns:         p.Columns,
			ArticleColumn:   p.ArticleColumn,
			QuantityColumn:  p.QuantityColumn,
			RowTolerance:    p.RowTolerance,
			CharTolerance:   p.CharTolerance,
		},
	}
}

func TestNewContainer_NilConfig(t *testing.T) {
	c, err := NewContainer(nil)
	assert.Nil(t, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")
}

func TestNewContainer_Defaults(t *testing.T) {
	cfg := testConfig()

	c, err := NewContainer(cfg)
	require.NoError(t, err)

	assert.NotNil(t, c.GetLogger())
	assert.Same(t, cfg, c.GetConfig())
	assert.NotNil(t, c.GetExtractor())
	assert.NotNil(t, c.GetBuilder())
	assert.NotNil(t, c.GetWriter())
	assert.WithinDuration(t, time.Now(), c.OrderDate(), time.Minute)
}

func TestNewContainer_Options(t *testing.T) {
	logger := logging.NewMockLogger()
	fixed := time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)
	opener := pdftable.NewMockOpener()

	c, err := NewContainer(testConfig(),
		WithLogger(logger),
		WithOpener(opener),
		WithClock(func() time.Time { return fixed }),
	)
	require.NoError(t, err)

	assert.Same(t, logger, c.GetLogger())
	assert.Equal(t, fixed, c.OrderDate())
	assert.True(t, logger.HasEntry("DEBUG", "Container initialized successfully"))

	_, err = c.GetExtractor().Extract("order.pdf")
	assert.Error(t, err)
	assert.Equal(t, []string{"order.pdf"}, opener.Opened())
}

func TestContainer_PinnedOrderDate(t *testing.T) {
	cfg := testConfig()
	cfg.Order.Date = "2024-03-05"

	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), c.OrderDate())
}
