package stream

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guardian-stream/internal/domain/entity"
)

func newTestPublisher(t *testing.T, shards int) (*Publisher, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	publisher, err := NewPublisherWithClient(client, "articles", shards)
	require.NoError(t, err)
	return publisher, client
}

func testArticle(t *testing.T, url string) entity.Article {
	t.Helper()
	article, err := entity.NewArticle("2026-01-15T10:30:00Z", "Test Article", url)
	require.NoError(t, err)
	return article
}

func TestNewPublisher_EmptyStreamName(t *testing.T) {
	for _, name := range []string{"", "   "} {
		_, err := NewPublisher("localhost:6379", name, 1)

		require.Error(t, err)
		var validationErr *entity.ValidationError
		assert.ErrorAs(t, err, &validationErr)
	}
}

func TestPublish_EmptySliceIsNoOp(t *testing.T) {
	publisher, client := newTestPublisher(t, 1)

	count, err := publisher.Publish(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	count, err = publisher.Publish(context.Background(), []entity.Article{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	length, err := client.XLen(context.Background(), "articles").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), length, "no records may be appended for an empty batch")
}

func TestPublish_AppendsOneRecordPerArticle(t *testing.T) {
	publisher, client := newTestPublisher(t, 1)
	articles := []entity.Article{
		testArticle(t, "https://example.com/a"),
		testArticle(t, "https://example.com/b"),
		testArticle(t, "https://example.com/c"),
	}

	count, err := publisher.Publish(context.Background(), articles)

	require.NoError(t, err)
	assert.Equal(t, 3, count)

	length, err := client.XLen(context.Background(), "articles").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(3), length)
}

func TestPublish_RecordCarriesPayloadAndPartitionKey(t *testing.T) {
	publisher, client := newTestPublisher(t, 1)
	article := testArticle(t, "https://example.com/a")

	count, err := publisher.PublishOne(context.Background(), article)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	entries, err := client.XRange(context.Background(), "articles", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, article.WebURL, entries[0].Values["partition_key"])

	// Round-trip: an external consumer decodes the same identity.
	var decoded entity.Article
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values["data"].(string)), &decoded))
	assert.Equal(t, article.WebTitle, decoded.WebTitle)
	assert.Equal(t, article.WebURL, decoded.WebURL)
	assert.True(t, article.WebPublicationDate.Equal(decoded.WebPublicationDate))
}

func TestPublish_OversizedRecordFailsWithSize(t *testing.T) {
	publisher, client := newTestPublisher(t, 1)

	oversized := testArticle(t, "https://example.com/huge").
		WithPreview(strings.Repeat("x", MaxRecordSize+1))
	followUp := testArticle(t, "https://example.com/after")

	count, err := publisher.Publish(context.Background(), []entity.Article{oversized, followUp})

	require.Error(t, err)
	assert.Equal(t, 0, count)

	var tooLargeErr *RecordTooLargeError
	require.ErrorAs(t, err, &tooLargeErr)

	// The reported size is the JSON-inflated serialized length.
	data, marshalErr := json.Marshal(oversized)
	require.NoError(t, marshalErr)
	assert.Equal(t, len(data), tooLargeErr.Size)
	assert.Greater(t, tooLargeErr.Size, MaxRecordSize)

	// The failing record stops everything: nothing was appended.
	length, lenErr := client.XLen(context.Background(), "articles").Result()
	require.NoError(t, lenErr)
	assert.Equal(t, int64(0), length)
}

func TestPublish_AbortsOnFirstFailure(t *testing.T) {
	publisher, client := newTestPublisher(t, 1)

	articles := []entity.Article{
		testArticle(t, "https://example.com/1"),
		testArticle(t, "https://example.com/2").WithPreview(strings.Repeat("x", MaxRecordSize+1)),
		testArticle(t, "https://example.com/3"),
	}

	count, err := publisher.Publish(context.Background(), articles)

	require.Error(t, err)
	assert.Equal(t, 0, count, "publish is all-or-nothing per invocation")

	// The record before the failure was appended; the one after was not.
	length, lenErr := client.XLen(context.Background(), "articles").Result()
	require.NoError(t, lenErr)
	assert.Equal(t, int64(1), length)
}

func TestPublish_SinkErrorWrapsCause(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	publisher, err := NewPublisherWithClient(client, "articles", 1)
	require.NoError(t, err)

	server.Close() // sink becomes unreachable

	count, err := publisher.PublishOne(context.Background(), testArticle(t, "https://example.com/a"))

	require.Error(t, err)
	assert.Equal(t, 0, count)
	var publishErr *PublishError
	require.ErrorAs(t, err, &publishErr)
	assert.Equal(t, "articles", publishErr.Stream)
	assert.Error(t, publishErr.Unwrap())
}

func TestPublish_ShardingRoutesByPartitionKey(t *testing.T) {
	publisher, client := newTestPublisher(t, 4)
	ctx := context.Background()

	article := testArticle(t, "https://example.com/stable")

	// The same URL always lands on the same shard stream.
	for i := 0; i < 3; i++ {
		_, err := publisher.PublishOne(ctx, article)
		require.NoError(t, err)
	}

	populated := 0
	for _, key := range []string{"articles:0", "articles:1", "articles:2", "articles:3"} {
		length, err := client.XLen(ctx, key).Result()
		require.NoError(t, err)
		if length > 0 {
			assert.Equal(t, int64(3), length)
			populated++
		}
	}
	assert.Equal(t, 1, populated, "one partition key maps to exactly one shard")
}

func TestPublisher_Ping(t *testing.T) {
	publisher, _ := newTestPublisher(t, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, publisher.Ping(ctx))
}
