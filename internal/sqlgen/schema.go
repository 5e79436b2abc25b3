package sqlgen

import (
	"fmt"

	"github.com/vvka-141/nftsql/pkg/nftsql"
)

// OneTableSchema returns the CREATE TABLE statement matching OneTable output.
func OneTableSchema(table string, mode nftsql.Quoting) (string, error) {
	ref, err := quoter{mode: mode}.table(table)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("CREATE TABLE %s (id int, name text, description text, image text, attributes text);", ref), nil
}

// TwoTableSchema returns the CREATE TABLE statements matching TwoTables
// output: the main table first, then the attributes table.
func TwoTableSchema(mainTable, attributesTable string, mode nftsql.Quoting) ([]string, error) {
	q := quoter{mode: mode}
	mainRef, err := q.table(mainTable)
	if err != nil {
		return nil, err
	}
	attrsRef, err := q.table(attributesTable)
	if err != nil {
		return nil, err
	}
	return []string{
		fmt.Sprintf("CREATE TABLE %s (id int, name text, description text, image text);", mainRef),
		fmt.Sprintf("CREATE TABLE %s (id int, trait_type text, value text);", attrsRef),
	}, nil
}
