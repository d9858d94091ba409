package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueueFIFO(t *testing.T) {
	q := NewEventQueue(4)
	assert.Equal(t, 3, q.Free())

	require.NoError(t, q.Post(down(1)))
	require.NoError(t, q.Post(up(1)))
	assert.Equal(t, 2, q.Available())

	ev, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, down(1), ev)
	ev, ok = q.Pop()
	assert.True(t, ok)
	assert.Equal(t, up(1), ev)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestEventQueueFull(t *testing.T) {
	q := NewEventQueue(3)
	require.NoError(t, q.Post(down(1)))
	require.NoError(t, q.Post(down(2)))
	assert.ErrorIs(t, q.Post(down(3)), ErrQueueFull)
	assert.Equal(t, 0, q.Free())
}

func TestEventQueueWrap(t *testing.T) {
	q := NewEventQueue(3)
	var got []Event
	for i := 0; i < 10; i++ {
		require.NoError(t, q.Post(down(KeyCode(i))))
		require.NoError(t, q.Post(up(KeyCode(i))))
		q.Drain(func(ev Event) { got = append(got, ev) })
	}
	require.Len(t, got, 20)
	assert.Equal(t, up(9), got[19])
}

func TestEventQueueSingleProducerSingleConsumer(t *testing.T) {
	const n = 10000
	q := NewEventQueue(16)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < n; {
			if q.Post(down(KeyCode(i))) == nil {
				i++
			}
		}
	}()

	next := 0
	for next < n {
		q.Drain(func(ev Event) {
			assert.Equal(t, KeyCode(next), ev.Key)
			next++
		})
	}
	wg.Wait()
	assert.Equal(t, 0, q.Available())
}
