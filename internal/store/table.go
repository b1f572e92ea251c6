package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// tableWaitTimeout bounds how long provisioning waits for DynamoDB to
// settle a table into its target state.
const tableWaitTimeout = 30 * time.Second

// EnsureTable creates the single table with the key schema and inverted
// index the store expects, then waits for it to become active. A table
// that already exists is left untouched. Deployed stacks provision the
// table through infrastructure; this exists for DynamoDB Local.
func EnsureTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	input := &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(AttrPK), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String(AttrSK), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(AttrPK), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(AttrSK), KeyType: types.KeyTypeRange},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(InvertedIndex),
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String(AttrSK), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String(AttrPK), KeyType: types.KeyTypeRange},
				},
				Projection: &types.Projection{
					ProjectionType: types.ProjectionTypeAll,
				},
			},
		},
	}

	if _, err := client.CreateTable(ctx, input); err != nil {
		var exists *types.ResourceInUseException
		if errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return waitForTableActive(ctx, client, tableName)
}

// TableStatus reports the table's current status string
func TableStatus(ctx context.Context, client *dynamodb.Client, tableName string) (string, error) {
	out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to describe table %s: %w", tableName, err)
	}

	return string(out.Table.TableStatus), nil
}

// DeleteTable removes the table and waits until it is gone. Deleting an
// absent table is not an error.
func DeleteTable(ctx context.Context, client *dynamodb.Client, tableName string) error {
	if _, err := client.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName),
	}); err != nil {
		var missing *types.ResourceNotFoundException
		if errors.As(err, &missing) {
			return nil
		}
		return fmt.Errorf("failed to delete table %s: %w", tableName, err)
	}

	return waitForTableDeleted(ctx, client, tableName)
}

func waitForTableActive(ctx context.Context, client *dynamodb.Client, tableName string) error {
	deadline := time.Now().Add(tableWaitTimeout)

	for time.Now().Before(deadline) {
		out, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(tableName),
		})
		if err != nil {
			return fmt.Errorf("failed to describe table %s: %w", tableName, err)
		}
		if out.Table.TableStatus == types.TableStatusActive {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}

	return fmt.Errorf("table %s did not become active within %v", tableName, tableWaitTimeout)
}

func waitForTableDeleted(ctx context.Context, client *dynamodb.Client, tableName string) error {
	deadline := time.Now().Add(tableWaitTimeout)

	for time.Now().Before(deadline) {
		_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
			TableName: aws.String(tableName),
		})
		if err != nil {
			var missing *types.ResourceNotFoundException
			if errors.As(err, &missing) {
				return nil
			}
			return fmt.Errorf("failed to describe table %s: %w", tableName, err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(500 * time.Millisecond):
		}
	}

	return fmt.Errorf("table %s was not deleted within %v", tableName, tableWaitTimeout)
}
