package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdate_DollarPlaceholders(t *testing.T) {
	query, args, err := Update("waiters").
		Set("available_slots", "[]").
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"email": "w@x.com", "version": 3}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE waiters SET available_slots = $1, version = version + 1 WHERE email = $2 AND version = $3", query)
	assert.Equal(t, []interface{}{"[]", "w@x.com", 3}, args)
}
