// Package stream implements the durable append-only sink for articles using
// Redis Streams. Each article becomes one XADD entry carrying the canonical
// JSON payload and a partition key; the partition key selects the shard
// stream so records for the same article stay on one ordering lane.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"guardian-stream/internal/domain/entity"
)

// MaxRecordSize is the sink's per-record size ceiling (1 MiB).
const MaxRecordSize = 1024 * 1024

// Record field names within a stream entry.
const (
	fieldData         = "data"
	fieldPartitionKey = "partition_key"
)

// Publisher appends article records to a partitioned Redis Stream.
// It holds no per-call state and is safe to reuse across invocations.
type Publisher struct {
	client     *redis.Client
	streamName string
	shards     int
}

// NewPublisher creates a Publisher connected to the Redis instance at addr.
//
// streamName must be non-empty after trimming. shards controls how many
// shard streams (<streamName>:<n>) records are spread over; values below 2
// mean a single unsharded stream.
func NewPublisher(addr, streamName string, shards int) (*Publisher, error) {
	if strings.TrimSpace(streamName) == "" {
		return nil, &entity.ValidationError{Field: "stream_name", Message: "stream name is required"}
	}

	client := redis.NewClient(&redis.Options{Addr: addr})

	return newPublisher(client, streamName, shards), nil
}

// NewPublisherWithClient creates a Publisher over an existing Redis client.
// Used by tests to point the publisher at an in-memory server.
func NewPublisherWithClient(client *redis.Client, streamName string, shards int) (*Publisher, error) {
	if strings.TrimSpace(streamName) == "" {
		return nil, &entity.ValidationError{Field: "stream_name", Message: "stream name is required"}
	}
	return newPublisher(client, streamName, shards), nil
}

func newPublisher(client *redis.Client, streamName string, shards int) *Publisher {
	if shards < 1 {
		shards = 1
	}
	return &Publisher{
		client:     client,
		streamName: streamName,
		shards:     shards,
	}
}

// StreamName returns the configured base stream name.
func (p *Publisher) StreamName() string {
	return p.streamName
}

// Close releases the underlying Redis connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}

// Ping checks that the sink is reachable.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Publish appends one record per article, sequentially, and returns the
// number of records appended.
//
// An empty slice is a no-op returning 0. The first failing record aborts
// the whole call: later articles are not attempted, and the count of
// records already appended is not reported. Callers must treat Publish as
// all-or-nothing per invocation.
//
// Error types:
//   - *RecordTooLargeError: a serialized record exceeds MaxRecordSize
//   - *PublishError: the sink rejected an append or was unreachable
func (p *Publisher) Publish(ctx context.Context, articles []entity.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}

	published := 0
	for _, article := range articles {
		if err := p.publishSingle(ctx, article); err != nil {
			return 0, err
		}
		published++
	}

	slog.Debug("published records to stream",
		slog.String("stream", p.streamName),
		slog.Int("records", published))

	return published, nil
}

// PublishOne normalizes a single article to a one-element batch.
func (p *Publisher) PublishOne(ctx context.Context, article entity.Article) (int, error) {
	return p.Publish(ctx, []entity.Article{article})
}

// publishSingle serializes and appends one article record.
func (p *Publisher) publishSingle(ctx context.Context, article entity.Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return &PublishError{Stream: p.streamName, Err: fmt.Errorf("marshal article: %w", err)}
	}

	if len(data) > MaxRecordSize {
		return &RecordTooLargeError{Size: len(data)}
	}

	key := p.shardKey(article.PartitionKey())
	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: key,
		Values: map[string]interface{}{
			fieldData:         string(data),
			fieldPartitionKey: article.PartitionKey(),
		},
	}).Err()
	if err != nil {
		return &PublishError{Stream: p.streamName, Err: err}
	}

	return nil
}

// shardKey routes a partition key to its shard stream. CRC-32 keeps the
// mapping stable across processes so per-article ordering holds.
func (p *Publisher) shardKey(partitionKey string) string {
	if p.shards <= 1 {
		return p.streamName
	}
	shard := crc32.ChecksumIEEE([]byte(partitionKey)) % uint32(p.shards)
	return fmt.Sprintf("%s:%d", p.streamName, shard)
}
