package executor

import (
	"context"
	"sync"
	"testing"

	"TaaraAgent/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}}
}

func (f *fakeRedis) Ping(ctx context.Context) error { return nil }

func (f *fakeRedis) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[key], nil
}

func (f *fakeRedis) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	next, err := fn(f.data[key])
	if err != nil {
		return err
	}
	f.data[key] = next
	return nil
}

func (f *fakeRedis) AppendStream(ctx context.Context, stream string, values map[string]interface{}) (string, error) {
	return "0-1", nil
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisStore(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(testLogger(), client, "")
	e := newTestExecutor(store, fixedNow)

	_, err := e.Execute(context.Background(), entity.ActionSchedule, entity.Parameters{entity.ParamTitle: "Sync"})
	require.NoError(t, err)
	_, err = e.Execute(context.Background(), entity.ActionSchedule, entity.Parameters{entity.ParamTitle: "Demo"})
	require.NoError(t, err)

	assert.Contains(t, client.data, DefaultCalendarKey)

	cal, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, cal.Events, 2)
	assert.Equal(t, "Sync", cal.Events[0].Title)
	assert.Equal(t, 2, cal.Events[1].ID)
}

func TestRedisStoreCorruptDocument(t *testing.T) {
	client := newFakeRedis()
	client.data["cal"] = []byte("garbage")
	store := NewRedisStore(testLogger(), client, "cal")

	cal, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cal.Events)
}
