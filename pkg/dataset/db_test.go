package dataset

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.db")

	db, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE molecules (
		id TEXT,
		mw REAL,
		hbd INTEGER,
		status TEXT
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO molecules VALUES
		('mol-1', 350.2, 2, 'good'),
		('mol-2', NULL, 5, 'bad'),
		('mol-3', 410.0, 1, 'good')`)
	require.NoError(t, err)

	tab, err := FromDB(db, "molecules")
	require.NoError(t, err)

	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, []string{"id", "mw", "hbd", "status"}, tab.Columns())
	assert.Equal(t, []string{"mw", "hbd"}, tab.NumericColumns())

	mw, ok := tab.Numeric("mw")
	require.True(t, ok)
	assert.Equal(t, 350.2, mw[0])
	assert.True(t, math.IsNaN(mw[1]), "NULL becomes missing")

	hbd, ok := tab.Numeric("hbd")
	require.True(t, ok)
	assert.Equal(t, 2.0, hbd[0], "integers widen to float64")

	status, ok := tab.Column("status")
	require.True(t, ok)
	assert.Equal(t, "good", status[0])
}

func TestFromDBErrors(t *testing.T) {
	_, err := FromDB(nil, "t")
	assert.ErrorIs(t, err, errDBNotInitialized)

	path := filepath.Join(t.TempDir(), "data.db")
	db, err := Open(DriverSQLite, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = FromDB(db, "molecules; DROP TABLE x")
	assert.ErrorIs(t, err, errBadTableName)

	_, err = FromDB(db, "missing")
	assert.Error(t, err)
}
