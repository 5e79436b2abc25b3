//go:build integration

package sqlgen

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nftsql/internal/testinfra"
	"github.com/vvka-141/nftsql/pkg/nftsql"
)

func execAll(t *testing.T, pool *pgxpool.Pool, statements []string) {
	t.Helper()
	for _, stmt := range statements {
		_, err := pool.Exec(context.Background(), stmt)
		require.NoError(t, err, "statement: %s", stmt)
	}
}

func TestIntegration_OneTableRoundTrip(t *testing.T) {
	pool, _ := testinfra.NewSchemaPool(t)
	ctx := context.Background()

	records := nftsql.StaticSource{
		catRecord(),
		{ID: 2, Name: "Cat's toy", Description: "it's \"new\"", Image: "ipfs://y", Attributes: []nftsql.Attribute{{TraitType: "owner's", Value: "<none>"}}},
		{ID: 3, Name: "Empty", Image: "ipfs://z"},
	}

	schema, err := OneTableSchema("nfts", nftsql.QuotingEscaped)
	require.NoError(t, err)
	execAll(t, pool, []string{schema})

	inserts, err := NewPreparer(records, WithQuoting(nftsql.QuotingEscaped)).OneTable(ctx, "nfts")
	require.NoError(t, err)
	execAll(t, pool, inserts)

	rows, err := pool.Query(ctx, "SELECT id, name, description, attributes FROM nfts ORDER BY id")
	require.NoError(t, err)
	defer rows.Close()

	type row struct {
		id                            int
		name, description, attributes string
	}
	var got []row
	for rows.Next() {
		var r row
		require.NoError(t, rows.Scan(&r.id, &r.name, &r.description, &r.attributes))
		got = append(got, r)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []row{
		{1, "Cat", "A cat", `[{"trait_type":"color","value":"black"}]`},
		{2, "Cat's toy", `it's "new"`, `[{"trait_type":"owner's","value":"<none>"}]`},
		{3, "Empty", "", `[]`},
	}, got)
}

func TestIntegration_TwoTablesRoundTrip(t *testing.T) {
	pool, _ := testinfra.NewSchemaPool(t)
	ctx := context.Background()

	records := nftsql.StaticSource{
		catRecord(),
		{ID: 2, Name: "Dog", Description: "A dog", Image: "ipfs://d", Attributes: []nftsql.Attribute{
			{TraitType: "color", Value: "brown"},
			{TraitType: "size", Value: "large"},
		}},
		{ID: 3, Name: "Fish", Image: "ipfs://f"},
	}

	schema, err := TwoTableSchema("main", "attrs", nftsql.QuotingVerbatim)
	require.NoError(t, err)
	execAll(t, pool, schema)

	results, err := NewPreparer(records).TwoTables(ctx, "main", "attrs")
	require.NoError(t, err)
	execAll(t, pool, Flatten(results))

	var mainCount, attrCount int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM main").Scan(&mainCount))
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM attrs").Scan(&attrCount))
	assert.Equal(t, 3, mainCount)
	assert.Equal(t, 3, attrCount)

	var value string
	require.NoError(t, pool.QueryRow(ctx, "SELECT value FROM attrs WHERE id = 2 AND trait_type = 'size'").Scan(&value))
	assert.Equal(t, "large", value)
}

func TestIntegration_VerbatimQuoteBreaksStatement(t *testing.T) {
	pool, _ := testinfra.NewSchemaPool(t)
	ctx := context.Background()

	schema, err := OneTableSchema("nfts", nftsql.QuotingVerbatim)
	require.NoError(t, err)
	execAll(t, pool, []string{schema})

	records := nftsql.StaticSource{{ID: 1, Name: "it's", Image: "ipfs://x"}}
	inserts, err := NewPreparer(records).OneTable(ctx, "nfts")
	require.NoError(t, err)

	_, err = pool.Exec(ctx, inserts[0])
	assert.Error(t, err)
}
