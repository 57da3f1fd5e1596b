package dynamo

import (
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrKey(t *testing.T) {
	key := strKey("session_id", "s1")
	require.Len(t, key, 1)
	assert.Equal(t, "s1", key["session_id"].(*types.AttributeValueMemberS).Value)
}

func TestCompositeKey(t *testing.T) {
	key := compositeKey("user_id", "u1", "comment_key", "k1")
	require.Len(t, key, 2)
	assert.Equal(t, "u1", key["user_id"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "k1", key["comment_key"].(*types.AttributeValueMemberS).Value)
}

func TestBuildUpdateExpr_SingleField(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{"read": true})
	require.NoError(t, err)

	assert.Equal(t, "SET #f0 = :v0", ue.Expr)
	assert.Equal(t, "read", ue.Names["#f0"])
	assert.Equal(t, true, ue.Values[":v0"].(*types.AttributeValueMemberBOOL).Value)
}

func TestBuildUpdateExpr_MultipleFields(t *testing.T) {
	ue, err := buildUpdateExpr(map[string]interface{}{
		"role":  "admin",
		"email": "a@b.c",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ue.Expr, "SET "))
	assert.Contains(t, ue.Expr, ", ")
	assert.Len(t, ue.Names, 2)
	assert.Len(t, ue.Values, 2)
}

func TestBuildUpdateExpr_Empty(t *testing.T) {
	_, err := buildUpdateExpr(map[string]interface{}{})
	assert.Error(t, err)
}
