package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/multitool/cmd/multitool/commands"
	"go.trai.ch/multitool/internal/app"
	"go.trai.ch/multitool/internal/build"
	"go.trai.ch/multitool/internal/core/domain"
	"go.trai.ch/multitool/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

type mockApp struct {
	updateFunc func(ctx context.Context, opts app.UpdateOptions) error
}

func (m *mockApp) Update(ctx context.Context, opts app.UpdateOptions) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, opts)
	}
	return nil
}

func newTestCLI(t *testing.T, a commands.Application) *commands.CLI {
	t.Helper()
	ctrl := gomock.NewController(t)
	lg := mocks.NewMockLogger(ctrl)
	lg.EXPECT().Info(gomock.Any()).AnyTimes()
	lg.EXPECT().Warn(gomock.Any()).AnyTimes()
	lg.EXPECT().Error(gomock.Any()).AnyTimes()
	return commands.New(a, lg)
}

func TestCommands_Update(t *testing.T) {
	t.Run("uses default lockfile path", func(t *testing.T) {
		var capturedOpts app.UpdateOptions
		called := false

		mock := &mockApp{
			updateFunc: func(_ context.Context, opts app.UpdateOptions) error {
				capturedOpts = opts
				called = true
				return nil
			},
		}

		cli := newTestCLI(t, mock)
		cli.SetArgs([]string{"update"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.True(t, called)
		assert.Equal(t, domain.DefaultLockfilePath, capturedOpts.LockfilePath)
	})

	t.Run("wires lockfile flag", func(t *testing.T) {
		var capturedOpts app.UpdateOptions

		mock := &mockApp{
			updateFunc: func(_ context.Context, opts app.UpdateOptions) error {
				capturedOpts = opts
				return nil
			},
		}

		cli := newTestCLI(t, mock)
		cli.SetArgs([]string{"update", "--lockfile", "tools/multitool.lock.json"})

		err := cli.Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "tools/multitool.lock.json", capturedOpts.LockfilePath)
	})

	t.Run("returns error on update failure", func(t *testing.T) {
		mock := &mockApp{
			updateFunc: func(_ context.Context, _ app.UpdateOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := newTestCLI(t, mock)
		cli.SetArgs([]string{"update"})
		// Silence output to avoid polluting test logs
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		mock := &mockApp{
			updateFunc: func(_ context.Context, _ app.UpdateOptions) error {
				panic("should not be called")
			},
		}

		cli := newTestCLI(t, mock)
		cli.SetArgs([]string{"update", "extra"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
	})
}

func TestCommands_Version(t *testing.T) {
	cli := newTestCLI(t, &mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	err := cli.Execute(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "multitool version "+build.Version)
}
