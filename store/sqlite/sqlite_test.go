package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payroll/payroll"
	"github.com/warp/payroll/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func record(name string, hours float64) payroll.Record {
	return payroll.Record{
		FromDate: "01/01/2024",
		ToDate:   "01/07/2024",
		Name:     name,
		Hours:    hours,
		Rate:     20,
		TaxRate:  0.1,
	}
}

// =============================================================================
// TESTS
// =============================================================================

func TestStore_EmptyReadsAsEmpty(t *testing.T) {
	store := newTestStore(t)

	lines, err := store.ReadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestStore_ReadAllInInsertionOrder(t *testing.T) {
	// GIVEN: three records appended in order
	store := newTestStore(t)
	ctx := context.Background()
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		require.NoError(t, store.Append(ctx, record(name, 8)))
	}

	// WHEN: read back
	lines, err := store.ReadAll(ctx)

	// THEN: lines decode in the same order, with the same values
	require.NoError(t, err)
	require.Len(t, lines, 3)
	for i, want := range []string{"Carol", "Alice", "Bob"} {
		r, err := payroll.Decode(lines[i])
		require.NoError(t, err)
		assert.Equal(t, record(want, 8), r)
	}
}

func TestStore_WorksUnderLedger(t *testing.T) {
	store := newTestStore(t)
	ledger := payroll.NewLedger(store)
	ctx := context.Background()

	require.True(t, ledger.Record(ctx, record("Alice", 40)).Persisted())
	rep, err := ledger.Report(ctx, payroll.ExactDate("01/01/2024"))

	require.NoError(t, err)
	assert.Equal(t, 1, rep.Totals.Count)
	assert.InDelta(t, 720.0, rep.Totals.Net, 1e-9)
}

func TestStore_Import_SkipsMalformed(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	n, err := store.Import(ctx, []string{
		"01/01/2024|01/07/2024|Alice|40|20|0.1",
		"broken",
		"01/08/2024|01/14/2024|Bob|35|25|0.2",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	// GIVEN: a record written to a database file
	path := filepath.Join(t.TempDir(), "payroll.db")
	first, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, first.Append(context.Background(), record("Alice", 40)))
	require.NoError(t, first.Close())

	// WHEN: the database is opened again (migrations already applied)
	second, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	// THEN: the record is still there
	n, err := second.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
