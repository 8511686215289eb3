package repository

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"moderation-backend/internal/models"
)

// NewDynamoDBClient connects to DynamoDB with static credentials.
func NewDynamoDBClient(region, accessKeyID, secretAccessKey string) *dynamodb.Client {
	return dynamodb.NewFromConfig(aws.Config{Region: region}, func(o *dynamodb.Options) {
		o.Credentials = credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")
	})
}

// dynamoModerationRepository stores one item per record in a single table
// keyed by record id. Scans are unordered, so history reads collect the
// matching items and sort them by created_at before windowing.
type dynamoModerationRepository struct {
	client *dynamodb.Client
	table  string
	logger *zap.Logger
}

// NewDynamoModerationRepository creates a DynamoDB-backed moderation store.
func NewDynamoModerationRepository(client *dynamodb.Client, table string, logger *zap.Logger) ModerationRepository {
	return &dynamoModerationRepository{client: client, table: table, logger: logger}
}

func (r *dynamoModerationRepository) CreateRecord(ctx context.Context, record *models.ModerationRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal moderation record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put moderation record: %w", err)
	}
	return nil
}

func (r *dynamoModerationRepository) GetHistory(ctx context.Context, limit, offset int) ([]models.ModerationRecord, error) {
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}

	var items []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue
	for {
		out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.table),
			ExclusiveStartKey: lastKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan moderation records: %w", err)
		}
		items = append(items, out.Items...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}

	var records []models.ModerationRecord
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moderation records: %w", err)
	}

	// Most recent first; ties broken by id so pagination stays consistent
	// across calls.
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt != records[j].CreatedAt {
			return records[i].CreatedAt > records[j].CreatedAt
		}
		return records[i].ID > records[j].ID
	})

	if offset >= len(records) {
		return []models.ModerationRecord{}, nil
	}
	end := offset + limit
	if end > len(records) {
		end = len(records)
	}
	return records[offset:end], nil
}

func (r *dynamoModerationRepository) CountTotal(ctx context.Context) (int, error) {
	return r.countScan(ctx, nil)
}

func (r *dynamoModerationRepository) CountByResult(ctx context.Context, result string) (int, error) {
	filter := &dynamodb.ScanInput{
		FilterExpression:         aws.String("#r = :result"),
		ExpressionAttributeNames: map[string]string{"#r": "result"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":result": &types.AttributeValueMemberS{Value: result},
		},
	}
	return r.countScan(ctx, filter)
}

// countScan runs a COUNT scan over the whole table, following pagination.
func (r *dynamoModerationRepository) countScan(ctx context.Context, filter *dynamodb.ScanInput) (int, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(r.table),
		Select:    types.SelectCount,
	}
	if filter != nil {
		input.FilterExpression = filter.FilterExpression
		input.ExpressionAttributeNames = filter.ExpressionAttributeNames
		input.ExpressionAttributeValues = filter.ExpressionAttributeValues
	}

	count := 0
	var lastKey map[string]types.AttributeValue
	for {
		input.ExclusiveStartKey = lastKey
		out, err := r.client.Scan(ctx, input)
		if err != nil {
			return 0, fmt.Errorf("failed to count moderation records: %w", err)
		}
		count += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		lastKey = out.LastEvaluatedKey
	}
	return count, nil
}
