package audit

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"TaaraAgent/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestLogger(sink Sink, env string) *auditLogger {
	a := New(testLogger(), sink, env).(*auditLogger)
	a.now = func() time.Time { return time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC) }
	return a
}

func decodeLines(t *testing.T, data []byte) []entity.AuditEntry {
	t.Helper()
	var entries []entity.AuditEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		var entry entity.AuditEntry
		require.NoError(t, jsoniter.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestRecordWritesVerifiableEntry(t *testing.T) {
	var buf bytes.Buffer
	a := newTestLogger(NewWriterSink(&buf), "production")

	result := entity.ExecutionResult{Status: entity.ExecutionSuccess, Message: "Task created: buy milk"}
	hash, err := a.Record(context.Background(), "task", result, "nadia")
	require.NoError(t, err)
	assert.Len(t, hash, 64)

	line := strings.TrimSuffix(buf.String(), "\n")
	assert.NotContains(t, line, "\n")
	assert.True(t, strings.HasPrefix(line, `{"action":"task","environment":"production","hash":`), line)

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 1)
	assert.Equal(t, hash, entries[0].Hash)
	assert.Equal(t, "nadia", entries[0].User)
	assert.True(t, VerifyEntry(entries[0]))
}

func TestRecordDefaults(t *testing.T) {
	var buf bytes.Buffer
	a := newTestLogger(NewWriterSink(&buf), "")

	_, err := a.Record(context.Background(), "delete_all", entity.BlockedResult{Reason: "Operation 'delete_all' is blocked", Blocked: true}, "")
	require.NoError(t, err)

	entries := decodeLines(t, buf.Bytes())
	require.Len(t, entries, 1)
	assert.Equal(t, entity.AnonymousUser, entries[0].User)
	assert.Equal(t, DefaultEnvironment, entries[0].Environment)
	assert.Equal(t, map[string]interface{}{"reason": "Operation 'delete_all' is blocked", "blocked": true}, entries[0].Result)
}

func TestVerifyEntryDetectsTampering(t *testing.T) {
	var buf bytes.Buffer
	a := newTestLogger(NewWriterSink(&buf), "")

	_, err := a.Record(context.Background(), "schedule", map[string]interface{}{"status": "success", "id": 7}, "u")
	require.NoError(t, err)

	entry := decodeLines(t, buf.Bytes())[0]
	require.True(t, VerifyEntry(entry))

	tampered := entry
	tampered.User = "mallory"
	assert.False(t, VerifyEntry(tampered))

	tampered = entry
	tampered.Timestamp = entry.Timestamp.Add(time.Second)
	assert.False(t, VerifyEntry(tampered))

	tampered = entry
	tampered.Hash = ""
	assert.False(t, VerifyEntry(tampered))
}

func TestComputeHashIgnoresMapOrder(t *testing.T) {
	base := entity.AuditEntry{Timestamp: time.Unix(0, 0).UTC(), Action: "remind", User: "u", Environment: "e"}

	a := base
	a.Result = map[string]interface{}{"status": "success", "message": "x"}
	b := base
	b.Result = map[string]interface{}{"message": "x", "status": "success"}

	ha, err := ComputeHash(a)
	require.NoError(t, err)
	hb, err := ComputeHash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
}

type errSink struct{}

func (errSink) Append(ctx context.Context, entry entity.AuditEntry, line []byte) error {
	return errors.New("sink offline")
}

func TestRecordSinkFailure(t *testing.T) {
	a := newTestLogger(errSink{}, "")
	_, err := a.Record(context.Background(), "task", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink offline")
}

func TestFileSinkConcurrentAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit", "audit.log")
	sink := NewFileSink(path)
	defer sink.Close()

	a := New(testLogger(), sink, "test")

	const n = 40
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := a.Record(context.Background(), "task", map[string]interface{}{
				"message": fmt.Sprintf("Task created: %s", strings.Repeat("x", i*50)),
			}, "")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	entries := decodeLines(t, data)
	require.Len(t, entries, n)
	for _, entry := range entries {
		assert.True(t, VerifyEntry(entry))
	}
}

type recordingRedis struct {
	stream string
	values map[string]interface{}
}

func (r *recordingRedis) Ping(ctx context.Context) error { return nil }
func (r *recordingRedis) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, nil
}
func (r *recordingRedis) Update(ctx context.Context, key string, fn func([]byte) ([]byte, error)) error {
	return nil
}
func (r *recordingRedis) AppendStream(ctx context.Context, stream string, values map[string]interface{}) (string, error) {
	r.stream = stream
	r.values = values
	return "1-0", nil
}
func (r *recordingRedis) Close() error { return nil }

func TestRedisSink(t *testing.T) {
	client := &recordingRedis{}
	a := newTestLogger(NewRedisSink(client, ""), "")

	hash, err := a.Record(context.Background(), "remind", entity.ExecutionResult{Status: entity.ExecutionSuccess}, "")
	require.NoError(t, err)

	assert.Equal(t, DefaultStream, client.stream)
	assert.Equal(t, hash, client.values["hash"])
	assert.Equal(t, "remind", client.values["action"])

	var entry entity.AuditEntry
	require.NoError(t, jsoniter.UnmarshalFromString(client.values["entry"].(string), &entry))
	assert.True(t, VerifyEntry(entry))
}
