package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "status").
		From("schedules").
		Where(squirrel.Eq{"status": "Available"}).
		Where(squirrel.Eq{"instrument_id": 7}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, status FROM schedules WHERE status = $1 AND instrument_id = $2", query)
	assert.Equal(t, []interface{}{"Available", 7}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Update("bookings").
		Set("status", "Canceled").
		Where(squirrel.Eq{"id": int64(3)}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE bookings SET status = $1 WHERE id = $2", query)
	assert.Equal(t, []interface{}{"Canceled", int64(3)}, args)
}
