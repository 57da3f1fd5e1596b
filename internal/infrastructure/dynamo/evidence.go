package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hs-portal-api/internal/domain"
)

// EvidenceRepo provides typed DynamoDB operations for the evidence archive table.
type EvidenceRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewEvidenceRepo(client *dynamodb.Client, tableName string) *EvidenceRepo {
	return &EvidenceRepo{client: client, tableName: tableName}
}

func (r *EvidenceRepo) Put(ctx context.Context, e *domain.Evidence) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal evidence: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *EvidenceRepo) Get(ctx context.Context, evidenceID string) (*domain.Evidence, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("evidence_id", evidenceID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("evidence not found: %w", domain.ErrNotFound)
	}
	var e domain.Evidence
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByReport queries the report_id GSI.
func (r *EvidenceRepo) ListByReport(ctx context.Context, reportID string) ([]domain.Evidence, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("report_id-index"),
		KeyConditionExpression: aws.String("report_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: reportID},
		},
	})
	if err != nil {
		return nil, err
	}
	var evidence []domain.Evidence
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &evidence); err != nil {
		return nil, err
	}
	return evidence, nil
}
