package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/partyscope/internal/models"
)

type fakeDynamo struct {
	pages       [][]map[string]types.AttributeValue
	scanCalls   int
	scanErr     error
	writes      [][]types.WriteRequest
	unprocessed int
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	page := f.pages[f.scanCalls]
	f.scanCalls++
	out := &dynamodb.ScanOutput{Items: page}
	if f.scanCalls < len(f.pages) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: "cursor"},
		}
	}
	return out, nil
}

func (f *fakeDynamo) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	out := &dynamodb.BatchWriteItemOutput{}
	for table, reqs := range in.RequestItems {
		f.writes = append(f.writes, reqs)
		if f.unprocessed > 0 {
			f.unprocessed--
			out.UnprocessedItems = map[string][]types.WriteRequest{table: reqs[:1]}
		}
	}
	return out, nil
}

func item(t *testing.T, r models.Record) map[string]types.AttributeValue {
	t.Helper()
	m, err := attributevalue.MarshalMap(r)
	require.NoError(t, err)
	return m
}

func TestGetAllRecords_Paginates(t *testing.T) {
	a := models.Record{ID: "1", Party: "Democrat", Timestamp: "2020-01-01", Sentiment: "POSITIVE", TopicID: 2}
	b := models.Record{ID: "2", Party: "Republican", Timestamp: "2021-01-01", Sentiment: "NEGATIVE", TopicID: 4}
	fake := &fakeDynamo{pages: [][]map[string]types.AttributeValue{{item(t, a)}, {item(t, b)}}}

	got, err := NewRecordStore(fake, "").GetAllRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.Record{a, b}, got)
	assert.Equal(t, 2, fake.scanCalls)
}

func TestGetAllRecords_ScanError(t *testing.T) {
	fake := &fakeDynamo{scanErr: errors.New("throttled")}
	_, err := NewRecordStore(fake, "t").GetAllRecords(context.Background())
	assert.ErrorContains(t, err, "throttled")
}

func TestStoreRecords_BatchesAndRetries(t *testing.T) {
	batchRetryBackoff = time.Millisecond
	t.Cleanup(func() { batchRetryBackoff = 500 * time.Millisecond })

	records := make([]models.Record, 30)
	for i := range records {
		records[i] = models.Record{ID: string(rune('a' + i)), Party: "Democrat", Timestamp: "2020-01-01", Sentiment: "POSITIVE"}
	}
	fake := &fakeDynamo{unprocessed: 1}

	err := NewRecordStore(fake, "t").StoreRecords(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, fake.writes, 3)
	assert.Len(t, fake.writes[0], 25)
	assert.Len(t, fake.writes[1], 1)
	assert.Len(t, fake.writes[2], 5)
}
