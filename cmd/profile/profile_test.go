package profile_test

import (
	"bytes"
	"os"
	"testing"

	"fjacquet/pdf-order/cmd/profile"
	"fjacquet/pdf-order/cmd/root"
	"fjacquet/pdf-order/internal/config"
	"fjacquet/pdf-order/internal/container"
	"fjacquet/pdf-order/internal/layout"
	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/ordererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	root.Init()
	root.Cmd.AddCommand(profile.Cmd)
	os.Exit(m.Run())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root.SetContainerOptions(container.WithLogger(logging.NewMockLogger()))
	t.Cleanup(func() { root.SetContainerOptions() })

	var out bytes.Buffer
	root.Cmd.SetOut(&out)
	root.Cmd.SetErr(&out)
	root.Cmd.SetArgs(append([]string{"profile"}, args...))
	err := root.Cmd.Execute()
	return out.String(), err
}

func TestProfileCommand_PrintsEffectiveConfig(t *testing.T) {
	out, err := execute(t, "--customer", "2001X")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "2001X", cfg.Order.CustomerCode)
	assert.Equal(t, 10, cfg.Order.DeliveryDays)
	assert.Equal(t, "require-quantity", cfg.Order.RowPolicy)
	assert.Equal(t, layout.DefaultColumns, cfg.Layout.Columns)
	assert.Equal(t, 0.40, cfg.Layout.FirstPageTop)
	assert.Equal(t, 0.12, cfg.Layout.ContinuationTop)
	assert.Equal(t, 0.92, cfg.Layout.Bottom)
}

func TestProfileCommand_RejectsArguments(t *testing.T) {
	_, err := execute(t, "extra")
	require.Error(t, err)
	assert.Equal(t, ordererror.ExitUsage, ordererror.ExitCode(err))
}
