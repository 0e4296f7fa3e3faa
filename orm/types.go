package orm

import (
	"fmt"
	"strings"
)

/*
	column types form a closed set. SQL() is what gets rendered into DDL,
	isType() is unexported so no package outside this one can declare
	new variants. columnType below plays the role of the abstract base:
	a variant becomes part of the set by embedding it.
*/
type ColumnType interface {
	SQL() string
	isType()
}

type columnType struct{}

func (columnType) isType() {}

type Integer struct{ columnType }

type Timestamp struct{ columnType }

type Real struct{ columnType }

type Text struct{ columnType }

type Char struct {
	columnType
	Length int
}

type Varchar struct {
	columnType
	Length int
}

func (Integer) SQL() string   { return "integer" }
func (Timestamp) SQL() string { return "timestamp" }
func (Real) SQL() string      { return "real" }
func (Text) SQL() string      { return "text" }
func (c Char) SQL() string    { return fmt.Sprintf("char(%d)", c.Length) }
func (c Varchar) SQL() string { return fmt.Sprintf("varchar(%d)", c.Length) }

/*
	Column is a single field in a table definition.
	Type may be left nil, in which case it renders as text.
	Name is not checked for emptiness nor sql safety - garbage in, garbage out.
*/
type Column struct {
	Name       string
	Type       ColumnType
	NotNull    bool
	PrimaryKey bool
}

func (c *Column) SQL() string {
	t := c.Type
	if t == nil {
		t = Text{}
	}
	s := c.Name + " " + t.SQL()
	if c.PrimaryKey {
		s += " primary key"
	}
	if c.NotNull {
		s += " not null"
	}
	return s
}

/* composite primary key constraint */
type PrimaryKey struct {
	ColumnNames []string
}

func (pk *PrimaryKey) SQL() string {
	return "primary key (" + strings.Join(pk.ColumnNames, ",") + ")"
}

/*
	ForeignKey points from a column named Name in the declaring table
	to Column in Table. referenced names are not validated against
	either schema.
*/
type ForeignKey struct {
	Name   string
	Table  *Table
	Column *Column
}

func (fk *ForeignKey) SQL() string {
	return "foreign key (" + fk.Name + ") references " +
		fk.Table.Name + " (" + fk.Column.Name + ")"
}

/* renders as a full create index statement, not a table-body fragment */
type Index struct {
	Name        string
	Table       *Table
	ColumnNames []string
	Unique      bool
}

func (ix *Index) SQL() string {
	s := "create"
	if ix.Unique {
		s += " unique"
	}
	return s + " index if not exists " + ix.Name + " on " +
		ix.Table.Name + " (" + strings.Join(ix.ColumnNames, ", ") + ");"
}
