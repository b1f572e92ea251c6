package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute and index names baked into the deployed table definition.
// The inverted index flips the primary key to (SK, PK) so every record
// of one type shares a partition there.
const (
	AttrPK = "PK"
	AttrSK = "SK"

	InvertedIndex = "InvertedIndex"

	keyDelimiter = "#"
)

// PrimaryKey builds the composite key for a primary entity record
func PrimaryKey(entityType, id string) (pk, sk string) {
	return fmt.Sprintf("%s%s%s", entityType, keyDelimiter, id), entityType
}

// KeyPrefix returns the partition-key prefix shared by every record of
// the given type
func KeyPrefix(entityType string) string {
	return entityType + keyDelimiter
}

// keyAttributes builds the marshaled primary key for item operations
func keyAttributes(pk, sk string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		AttrPK: &types.AttributeValueMemberS{Value: pk},
		AttrSK: &types.AttributeValueMemberS{Value: sk},
	}
}
