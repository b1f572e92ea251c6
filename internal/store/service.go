package store

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Chasso/cdk-local-testing/internal/models"
)

// Service implements single-table data access over a DynamoDB client.
// Every entity type shares one table; records are addressed by the
// composite key scheme in keys.go.
type Service struct {
	client    DynamoClient
	tableName string
}

// NewService creates a new data-access service
func NewService(client DynamoClient, tableName string) *Service {
	return &Service{
		client:    client,
		tableName: tableName,
	}
}

// List returns every record of entityType. The query runs against the
// inverted index, where records of one type share a partition, and
// drains every result page so callers always see the complete set
// regardless of backend paging.
func (s *Service) List(ctx context.Context, entityType string) ([]models.Record, error) {
	keyCond := expression.Key(AttrSK).Equal(expression.Value(entityType)).
		And(expression.Key(AttrPK).BeginsWith(KeyPrefix(entityType)))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build list expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		IndexName:                 aws.String(InvertedIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	records := []models.Record{}
	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, NewOperationError("Query", entityType, err)
		}

		for _, item := range out.Items {
			rec, err := unmarshalRecord(item)
			if err != nil {
				return nil, NewOperationError("Query", entityType, err)
			}
			records = append(records, rec)
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	logrus.WithFields(logrus.Fields{
		"entity_type": entityType,
		"count":       len(records),
	}).Debug("Listed records")

	return records, nil
}

// Get retrieves one record by id. It returns (nil, nil) when no record
// exists; absence is not an error at this layer.
func (s *Service) Get(ctx context.Context, id, entityType string) (models.Record, error) {
	pk, sk := PrimaryKey(entityType, id)

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       keyAttributes(pk, sk),
	})
	if err != nil {
		return nil, NewOperationError("GetItem", pk, err)
	}

	if len(out.Item) == 0 {
		return nil, nil
	}

	return unmarshalRecord(out.Item)
}

// Create persists a new record of entityType and returns the generated
// id. Generated ids are never reused, so no collision check is made.
func (s *Service) Create(ctx context.Context, rec models.Record, entityType string) (string, error) {
	id := uuid.New().String()

	item := rec.Clone()
	if item == nil {
		item = models.Record{}
	}
	item[models.FieldID] = id
	item[models.FieldCreatedOn] = models.Timestamp(time.Now())

	pk, sk := PrimaryKey(entityType, id)
	if err := s.put(ctx, item, pk, sk); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"entity_type": entityType,
		"id":          id,
	}).Debug("Created record")

	return id, nil
}

// Update applies rec as a merge patch over the stored record with the
// same id: fields present in rec overwrite, fields absent survive, and
// id and createdOn are never changed. Returns an error matching
// ErrNotFound when no record with that id exists.
func (s *Service) Update(ctx context.Context, rec models.Record, entityType string) error {
	id := rec.ID()
	if id == "" {
		return ErrMissingID
	}

	existing, err := s.Get(ctx, id, entityType)
	if err != nil {
		return err
	}
	if existing == nil {
		return &NotFoundError{EntityType: entityType, ID: id}
	}

	merged := models.Merge(existing, rec)

	pk, sk := PrimaryKey(entityType, id)
	if err := s.put(ctx, merged, pk, sk); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"entity_type": entityType,
		"id":          id,
	}).Debug("Updated record")

	return nil
}

// Delete removes the record with the given id. Deleting an absent
// record is not an error, so the operation is idempotent.
func (s *Service) Delete(ctx context.Context, id, entityType string) error {
	pk, sk := PrimaryKey(entityType, id)
	return s.deleteKey(ctx, pk, sk)
}

// CreateLink persists a link record under caller-supplied keys. Link
// records relate entities outside the primary key scheme; the caller
// owns the key format.
func (s *Service) CreateLink(ctx context.Context, rec models.Record, pk, sk string) error {
	item := rec.Clone()
	if item == nil {
		item = models.Record{}
	}
	return s.put(ctx, item, pk, sk)
}

// DeleteLink removes a link record under caller-supplied keys. Like
// Delete, it is idempotent.
func (s *Service) DeleteLink(ctx context.Context, pk, sk string) error {
	return s.deleteKey(ctx, pk, sk)
}

// put is the shared write primitive. Every write refreshes
// lastModifiedOn and attaches the key attributes to the stored item.
func (s *Service) put(ctx context.Context, rec models.Record, pk, sk string) error {
	rec[models.FieldLastModifiedOn] = models.Timestamp(time.Now())

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return NewOperationError("PutItem", pk, fmt.Errorf("failed to encode record: %w", err))
	}
	item[AttrPK] = &types.AttributeValueMemberS{Value: pk}
	item[AttrSK] = &types.AttributeValueMemberS{Value: sk}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return NewOperationError("PutItem", pk, err)
	}

	return nil
}

// deleteKey removes one item by its full primary key
func (s *Service) deleteKey(ctx context.Context, pk, sk string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       keyAttributes(pk, sk),
	}); err != nil {
		return NewOperationError("DeleteItem", pk, err)
	}

	return nil
}

// unmarshalRecord converts a stored item back into a Record, stripping
// the key attributes so they never leak to callers
func unmarshalRecord(item map[string]types.AttributeValue) (models.Record, error) {
	var rec models.Record
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode stored item: %w", err)
	}

	delete(rec, AttrPK)
	delete(rec, AttrSK)

	return rec, nil
}
