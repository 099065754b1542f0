package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/m2/internal/adapters/cas"
	"go.trai.ch/m2/internal/adapters/content"
	"go.trai.ch/m2/internal/adapters/lock"
	"go.trai.ch/m2/internal/adapters/telemetry"
	"go.trai.ch/m2/internal/app"
	"go.trai.ch/m2/internal/core/domain"
	"go.trai.ch/m2/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newApp(loader *mocks.MockConfigLoader, logger *mocks.MockLogger) *app.App {
	return app.New(
		loader,
		app.Services{},
		content.NewDescriptors(),
		cas.NewStore(),
		lock.New(),
		telemetry.NewNoOpTracer(),
		logger,
	)
}

func provide(a *app.App, logger *mocks.MockLogger) ComponentProvider {
	return func(context.Context) (*app.Components, func(), error) {
		return &app.Components{App: a, Logger: logger}, func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	application := newApp(mocks.NewMockConfigLoader(ctrl), mockLogger)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), provide(application, mockLogger))
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "m2 version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	loadErr := errors.New("load failed")
	mockLoader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)
	mockLogger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, loadErr)
	})

	application := newApp(mockLoader, mockLogger)
	exitCode := run(
		context.Background(),
		[]string{"download", "org.example:lib:1.0", "--build-dir", t.TempDir()},
		io.Discard, io.Discard,
		provide(application, mockLogger),
	)
	assert.Equal(t, 1, exitCode)
}

// TestRun_Signal verifies that a canceled context ends a running command.
func TestRun_Signal(t *testing.T) {
	ctrl := gomock.NewController(t)
	blockCh := make(chan struct{})

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLoader.EXPECT().Load(gomock.Any()).DoAndReturn(func(string) (*domain.OperationConfiguration, error) {
		select {
		case <-blockCh:
			return nil, context.Canceled
		case <-time.After(5 * time.Second):
			return nil, errors.New("timeout in mock")
		}
	})
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := newApp(mockLoader, mockLogger)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan int)
	go func() {
		errCh <- run(ctx, []string{"localize", "org.example:lib:1.0"}, io.Discard, io.Discard, provide(application, mockLogger))
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()
	close(blockCh)

	select {
	case ret := <-errCh:
		assert.NotEqual(t, 0, ret)
	case <-time.After(2 * time.Second):
		t.Fatal("run() did not return after cancellation")
	}
}
