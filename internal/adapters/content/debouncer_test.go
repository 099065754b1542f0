package content_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/m2/internal/adapters/content"
)

const jarPath = "/repo/org/example/lib/1.0/lib-1.0.jar"

func TestDebouncer_CoalescesPaths(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		var received []string

		d := content.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls++
			received = paths
		})

		d.Add(jarPath)
		d.Add(jarPath)
		d.Add("/repo/org/example/lib/1.0/lib-1.0.pom")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Equal(t, 1, calls)
		assert.ElementsMatch(t, []string{jarPath, "/repo/org/example/lib/1.0/lib-1.0.pom"}, received)
	})
}

func TestDebouncer_WindowRestartsOnAdd(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var mu sync.Mutex
		var calls int

		d := content.NewDebouncer(100*time.Millisecond, func([]string) {
			mu.Lock()
			calls++
			mu.Unlock()
		})

		d.Add(jarPath)
		time.Sleep(60 * time.Millisecond)
		d.Add(jarPath + ".sha1")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 0, calls)
		mu.Unlock()

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		mu.Lock()
		assert.Equal(t, 1, calls)
		mu.Unlock()
	})
}

func TestDebouncer_FlushIsSynchronous(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var calls int
		var received []string

		d := content.NewDebouncer(100*time.Millisecond, func(paths []string) {
			calls++
			received = paths
		})

		d.Add(jarPath)
		d.Flush()

		require.Equal(t, 1, calls)
		assert.Equal(t, []string{jarPath}, received)

		// The stopped timer must not deliver the batch a second time.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, calls)
	})
}

func TestDebouncer_FlushEmpty(t *testing.T) {
	var calls int
	d := content.NewDebouncer(100*time.Millisecond, func([]string) { calls++ })

	d.Flush()

	assert.Equal(t, 0, calls)
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := content.NewDebouncer(50*time.Millisecond, nil)
		d.Add(jarPath)
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
