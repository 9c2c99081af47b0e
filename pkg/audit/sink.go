package audit

import (
	"context"
	"io"
	"sync"

	"TaaraAgent/internal/entity"
	"TaaraAgent/pkg/redis"

	"gopkg.in/natefinch/lumberjack.v2"
)

const DefaultStream = "taara:audit"

// WriterSink appends newline-delimited entries to w, one Write per entry.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Append(ctx context.Context, entry entity.AuditEntry, line []byte) error {
	buf := make([]byte, 0, len(line)+1)
	buf = append(buf, line...)
	buf = append(buf, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(buf)
	return err
}

// FileSink is a WriterSink over a size-rotated file. Rotated segments are
// kept indefinitely.
type FileSink struct {
	*WriterSink
	file *lumberjack.Logger
}

func NewFileSink(path string) *FileSink {
	file := &lumberjack.Logger{
		Filename:   path,
		LocalTime:  true,
		MaxSize:    100,
		MaxAge:     0,
		MaxBackups: 0,
		Compress:   false,
	}
	return &FileSink{WriterSink: NewWriterSink(file), file: file}
}

func (s *FileSink) Close() error {
	return s.file.Close()
}

// RedisSink appends entries to a redis stream.
type RedisSink struct {
	client redis.IRedis
	stream string
}

func NewRedisSink(client redis.IRedis, stream string) *RedisSink {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisSink{client: client, stream: stream}
}

func (s *RedisSink) Append(ctx context.Context, entry entity.AuditEntry, line []byte) error {
	_, err := s.client.AppendStream(ctx, s.stream, map[string]interface{}{
		"hash":   entry.Hash,
		"action": entry.Action,
		"entry":  string(line),
	})
	return err
}
