package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hs-portal-api/internal/domain"
)

// SeenCommentRepo persists the dedup set of already-notified reviewer
// comments, keyed by (user, comment key). Persisting it is what keeps a page
// reload from resurrecting acknowledged comment notifications.
type SeenCommentRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSeenCommentRepo(client *dynamodb.Client, tableName string) *SeenCommentRepo {
	return &SeenCommentRepo{client: client, tableName: tableName}
}

func (r *SeenCommentRepo) Put(ctx context.Context, sc *domain.SeenComment) error {
	item, err := attributevalue.MarshalMap(sc)
	if err != nil {
		return fmt.Errorf("marshal seen comment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// Exists reports whether the (user, key) pair was already recorded.
func (r *SeenCommentRepo) Exists(ctx context.Context, userID, commentKey string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("user_id", userID, "comment_key", commentKey),
	})
	if err != nil {
		return false, err
	}
	return out.Item != nil, nil
}
