package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/partyscope/internal/models"
)

const (
	RECORDS_TABLE_NAME = "PoliticalTweets"
	maxBatchSize       = 25
)

var (
	batchRetryBackoff = 500 * time.Millisecond
	after             = time.After
)

// ScanAPI is the part of the DynamoDB client the record store uses.
type ScanAPI interface {
	dynamodb.ScanAPIClient
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
}

// RecordStore reads and writes posts in a DynamoDB table.
type RecordStore struct {
	client ScanAPI
	table  string
}

func NewRecordStore(client ScanAPI, table string) *RecordStore {
	if table == "" {
		table = RECORDS_TABLE_NAME
	}
	return &RecordStore{client: client, table: table}
}

// GetAllRecords scans the whole table. The table is small enough to be read
// once per process.
func (s *RecordStore) GetAllRecords(ctx context.Context) ([]models.Record, error) {
	var records []models.Record
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for records failed: %w", err)
		}
		var page []models.Record
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal current record page", slog.String("error", err.Error()))
			return nil, fmt.Errorf("[DynamoDB] unmarshal records: %w", err)
		}
		records = append(records, page...)
	}

	slog.Info("[DynamoDB] Successfully retrieved records",
		slog.String("table", s.table),
		slog.Int("count", len(records)))
	return records, nil
}

// StoreRecords batch writes records, 25 per request, retrying unprocessed
// items with backoff.
func (s *RecordStore) StoreRecords(ctx context.Context, records []models.Record) error {
	for i := 0; i < len(records); i += maxBatchSize {
		if err := ctx.Err(); err != nil {
			slog.Warn("[DynamoDB] context canceled")
			return err
		}

		end := min(i+maxBatchSize, len(records))
		writeRequests := make([]types.WriteRequest, 0, end-i)
		for _, rec := range records[i:end] {
			item, err := attributevalue.MarshalMap(rec)
			if err != nil {
				return fmt.Errorf("[DynamoDB] marshal record %q: %w", rec.ID, err)
			}
			writeRequests = append(writeRequests, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table: writeRequests},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write records: %w", err)
		}

		retryCount := 0
		backoff := batchRetryBackoff
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-after(backoff):
			}
			backoff *= 2
			slog.Warn("[DynamoDB] Retrying unprocessed items...",
				slog.Int("retry_attempt", retryCount+1),
				slog.Int("remaining_items", len(out.UnprocessedItems[s.table])))

			out, err = s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
			}
			retryCount++
		}

		if n := len(out.UnprocessedItems[s.table]); n > 0 {
			return fmt.Errorf("[DynamoDB] %d records not written after retries", n)
		}
	}

	slog.Info("[DynamoDB] Successfully stored records", slog.Int("count", len(records)))
	return nil
}
