package orm

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/kzaag/xmap/cmn"
)

/* used when a declaration leaves top_tag out */
const TopLevelTag = "DATA_RECORDS/DATA_RECORD"

/*

parsing table declaration files into Table objects.
one file declares one table:

	table:
	  name: employers
	  parent: people
	  tag_name: employers/employer
	  columns:
	    - name: name
	      not_null: true
	    - name: address

files are read in lexical order so parents must be declared in files
sorting before their children.

*/

type ColumnDecl struct {
	Name       string
	Type       string
	Length     int
	NotNull    bool `yaml:"not_null"`
	PrimaryKey bool `yaml:"primary_key"`
}

type ForeignKeyDecl struct {
	Name   string
	Table  string
	Column string
}

type IndexDecl struct {
	Name    string
	Columns []string
	Unique  bool
}

type TableDecl struct {
	Name        string
	Filename    string
	TopTag      string `yaml:"top_tag"`
	TagName     string `yaml:"tag_name"`
	Parent      string
	Columns     []ColumnDecl
	ForeignKeys []ForeignKeyDecl `yaml:"foreign_keys"`
	PrimaryKey  []string         `yaml:"primary_key"`
	HashKey     []string         `yaml:"hash_key"`
	Indexes     []IndexDecl
}

type DDObject struct {
	Table *TableDecl
}

type ParseCtx struct {
	tables  map[string]*Table
	ordered []*Table
	indexes []*Index
}

func errElevateColumn(cname string, err error) error {
	return fmt.Errorf("in column %s: %s", cname, err.Error())
}

func parserColumnType(d *ColumnDecl) (ColumnType, error) {
	switch strings.ToLower(d.Type) {
	case "":
		/* Column renders nil type as text */
		return nil, nil
	case "integer":
		return Integer{}, nil
	case "timestamp":
		return Timestamp{}, nil
	case "real":
		return Real{}, nil
	case "text":
		return Text{}, nil
	case "char":
		if d.Length <= 0 {
			return nil, fmt.Errorf("char requires a positive length")
		}
		return Char{Length: d.Length}, nil
	case "varchar":
		if d.Length <= 0 {
			return nil, fmt.Errorf("varchar requires a positive length")
		}
		return Varchar{Length: d.Length}, nil
	default:
		return nil, fmt.Errorf("unknown type: \"%s\"", d.Type)
	}
}

func parserColumns(dd []ColumnDecl) ([]*Column, error) {
	cols := make([]*Column, 0, len(dd))
	for i := range dd {
		d := &dd[i]
		if d.Name == "" {
			return nil, fmt.Errorf(
				"column at index %d doesnt have name specified", i)
		}
		ct, err := parserColumnType(d)
		if err != nil {
			return nil, errElevateColumn(d.Name, err)
		}
		cols = append(cols, &Column{
			Name:       d.Name,
			Type:       ct,
			NotNull:    d.NotNull,
			PrimaryKey: d.PrimaryKey,
		})
	}
	return cols, nil
}

func (ctx *ParseCtx) parserForeignKeys(dd []ForeignKeyDecl) ([]*ForeignKey, error) {
	if len(dd) == 0 {
		return nil, nil
	}
	fks := make([]*ForeignKey, 0, len(dd))
	for i := range dd {
		d := &dd[i]
		if d.Name == "" {
			return nil, fmt.Errorf(
				"foreign key at index %d doesnt have name specified", i)
		}
		ref, ok := ctx.tables[d.Table]
		if !ok {
			return nil, fmt.Errorf(
				"in foreign key %s: unknown table %s", d.Name, d.Table)
		}
		col := ref.Column(d.Column)
		if col == nil {
			return nil, fmt.Errorf(
				"in foreign key %s: table %s has no column %s",
				d.Name, d.Table, d.Column)
		}
		fks = append(fks, &ForeignKey{Name: d.Name, Table: ref, Column: col})
	}
	return fks, nil
}

func parserIndexes(t *Table, dd []IndexDecl) ([]*Index, error) {
	var ixs []*Index
	for i := range dd {
		d := &dd[i]
		if d.Name == "" {
			return nil, fmt.Errorf(
				"index at index %d doesnt have name specified", i)
		}
		if len(d.Columns) == 0 {
			return nil, fmt.Errorf(
				"in index %s: no index columns specified", d.Name)
		}
		for _, name := range d.Columns {
			if t.Column(name) == nil {
				return nil, fmt.Errorf(
					"in index %s: table %s has no column %s",
					d.Name, t.Name, name)
			}
		}
		ixs = append(ixs, &Index{
			Name:        d.Name,
			Table:       t,
			ColumnNames: append([]string(nil), d.Columns...),
			Unique:      d.Unique,
		})
	}
	return ixs, nil
}

func (ctx *ParseCtx) parserTable(d *TableDecl, path string) error {
	if d.Name == "" {
		return fmt.Errorf("table defined in %s doesnt have specified name", path)
	}

	cols, err := parserColumns(d.Columns)
	if err != nil {
		return errTable(d.Name, "%s", err)
	}

	fks, err := ctx.parserForeignKeys(d.ForeignKeys)
	if err != nil {
		return errTable(d.Name, "%s", err)
	}

	var parent *Table
	if d.Parent != "" {
		if parent = ctx.tables[d.Parent]; parent == nil {
			return errTable(d.Name, "unknown parent table %s", d.Parent)
		}
	}

	var pkey *PrimaryKey
	if len(d.PrimaryKey) > 0 {
		pkey = &PrimaryKey{ColumnNames: d.PrimaryKey}
	}

	topTag := d.TopTag
	if topTag == "" {
		topTag = TopLevelTag
	}

	t, err := NewTable(TableDef{
		Name:        d.Name,
		Columns:     cols,
		TopTag:      topTag,
		ForeignKeys: fks,
		Primary:     pkey,
		Parent:      parent,
		HashKey:     d.HashKey,
		TagName:     d.TagName,
	})
	if err != nil {
		return err
	}

	if d.Filename != "" {
		/* silently ignored on child tables, same as SetFilename */
		t.SetFilename(d.Filename)
	}

	ixs, err := parserIndexes(t, d.Indexes)
	if err != nil {
		return errTable(d.Name, "%s", err)
	}

	ctx.tables[t.Name] = t
	ctx.ordered = append(ctx.ordered, t)
	ctx.indexes = append(ctx.indexes, ixs...)
	return nil
}

func parserLoadDecl(path string, fc []byte, args interface{}) error {
	ctx := args.(*ParseCtx)
	var obj DDObject
	if err := yaml.Unmarshal(fc, &obj); err != nil {
		return fmt.Errorf("couldnt unmarshal %s %s", path, err.Error())
	}
	if obj.Table == nil {
		return fmt.Errorf("no table defined in %s", path)
	}
	return ctx.parserTable(obj.Table, path)
}

/*
	ParseDir loads every yml declaration under dir (recursively, in
	lexical order) and returns the declared tables plus their indexes.
	tables come back in declaration order, parents before children.
*/
func ParseDir(dir string) ([]*Table, []*Index, error) {
	ctx := &ParseCtx{tables: make(map[string]*Table)}
	if err := cmn.IterateSource(dir, parserLoadDecl, ctx); err != nil {
		return nil, nil, err
	}
	return ctx.ordered, ctx.indexes, nil
}
