package orm

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

/*
	DDL renders the create table statement. column fragments come out in
	declaration order, then foreign keys, then the composite primary key
	if one was declared. nil foreign key entries are skipped.
*/
func (t *Table) DDL() string {
	cols := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		cols = append(cols, "  "+c.SQL())
	}

	s := "create table if not exists " + t.Name + " (" + strings.Join(cols, ",\n")

	if len(t.ForeignKeys) > 0 {
		s += ",\n"
		fks := make([]string, 0, len(t.ForeignKeys))
		for _, fk := range t.ForeignKeys {
			if fk == nil {
				continue
			}
			fks = append(fks, " foreign key("+fk.Name+") references "+
				fk.Table.Name+"("+fk.Column.Name+")")
		}
		s += strings.Join(fks, ",\n")
	}

	if t.Primary != nil {
		s += ",\n" + t.Primary.SQL()
	}

	return s + ");"
}

/*
	InsertStmt renders one insert statement for a row read from xml.
	meant for feeding whatever executes or bulk loads the data, this
	package itself never runs sql.
*/
func (t *Table) InsertStmt(row Row) string {
	names := make([]string, 0, len(t.cols))
	vals := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		names = append(names, c.Name)
		vals = append(vals, sqlValue(row[c.Name]))
	}
	return "insert into " + t.Name + " (" + strings.Join(names, ",") +
		") values (" + strings.Join(vals, ",") + ");"
}

func sqlValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return pq.QuoteLiteral(x)
	default:
		return fmt.Sprint(x)
	}
}
