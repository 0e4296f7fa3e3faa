package orm

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/kzaag/xmap/cmn"
)

/*
	one record extracted from xml. values are nil, string, int or float64.
*/
type Row map[string]interface{}

/*
	TableDef is what the user fills in to get a Table. optional parts
	may stay zero:

	ForeignKeys - explicit foreign keys, on top of whatever
	              parent linking adds
	Primary     - composite primary key constraint
	Parent      - parent table for embedded tables. if set then TagName
	              must be set too and the parent must carry a hash_id
	              column (normally via HashKey)
	HashKey     - column names hashed together into the auto created
	              hash_id surrogate key
	TagName     - xpath suffix locating this tables records inside one
	              parent record
*/
type TableDef struct {
	Name        string
	Columns     []*Column
	TopTag      string
	ForeignKeys []*ForeignKey
	Primary     *PrimaryKey
	Parent      *Table
	HashKey     []string
	TagName     string
}

/*
	Table owns the full definition and is effectively immutable once
	NewTable returns - the only thing left mutable is the root tables
	filename.
*/
type Table struct {
	Name        string
	TopTag      string
	TagName     string
	ForeignKeys []*ForeignKey
	Primary     *PrimaryKey
	Parent      *Table
	HashKey     []string

	filename string
	cols     []*Column
	byName   map[string]*Column
}

func errTable(tname string, format string, argv ...interface{}) error {
	return fmt.Errorf("in table %s: %s", tname, fmt.Sprintf(format, argv...))
}

func NewTable(def TableDef) (*Table, error) {
	t := &Table{
		Name:     def.Name,
		TopTag:   def.TopTag,
		TagName:  def.TagName,
		Primary:  def.Primary,
		Parent:   def.Parent,
		HashKey:  append([]string(nil), def.HashKey...),
		filename: def.Name + ".xml",
		byName:   make(map[string]*Column),
	}

	if def.Parent != nil {
		/* child records live in the parents file */
		t.filename = ""
		if def.TagName == "" {
			return nil, errTable(def.Name,
				"tag_name cannot be empty if parent_table is set")
		}
	}

	for _, c := range def.Columns {
		t.putColumn(c)
	}
	t.ForeignKeys = append([]*ForeignKey(nil), def.ForeignKeys...)

	if err := t.enforceHashKey(); err != nil {
		return nil, err
	}
	if err := t.enforceParentHash(); err != nil {
		return nil, err
	}
	return t, nil
}

/*
	columns behave like an insertion ordered map: a duplicate name keeps
	the first occurrences position but the later value wins
*/
func (t *Table) putColumn(c *Column) {
	if _, ok := t.byName[c.Name]; ok {
		for i := range t.cols {
			if t.cols[i].Name == c.Name {
				t.cols[i] = c
				break
			}
		}
	} else {
		t.cols = append(t.cols, c)
	}
	t.byName[c.Name] = c
}

/* Columns returns the columns in declaration order, auto added ones last. */
func (t *Table) Columns() []*Column {
	return t.cols
}

/* Column returns the column with the given name, or nil. */
func (t *Table) Column(name string) *Column {
	return t.byName[name]
}

func (t *Table) enforceHashKey() error {
	if len(t.HashKey) == 0 {
		return nil
	}
	/* reconstructing an already enforced definition is fine */
	if c, ok := t.byName["hash_id"]; ok && c.PrimaryKey {
		return nil
	}
	for _, c := range t.cols {
		if c.PrimaryKey {
			return errTable(t.Name, "a table with a hash key cant be"+
				" declared with a column set as a primary key")
		}
	}
	if t.Primary != nil {
		return errTable(t.Name,
			"a table with a hash key cant have a primary key declared")
	}
	if _, ok := t.byName["hash_id"]; !ok {
		t.putColumn(&Column{Name: "hash_id", PrimaryKey: true, NotNull: true})
	}
	return nil
}

func (t *Table) enforceParentHash() error {
	if t.Parent == nil {
		return nil
	}
	if c, ok := t.byName["parent_hash"]; ok && c.PrimaryKey {
		return nil
	}
	ref := t.Parent.Column("hash_id")
	if ref == nil {
		return errTable(t.Name,
			"parent table %s has no hash_id column", t.Parent.Name)
	}
	t.putColumn(&Column{Name: "parent_hash", NotNull: true})
	t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
		Name:   "parent_hash",
		Table:  t.Parent,
		Column: ref,
	})
	return nil
}

/*
	Filename is the name of the xml file holding this tables records.
	children always defer to the parent, only the root most tables
	filename matters.
*/
func (t *Table) Filename() string {
	if t.Parent != nil {
		return t.Parent.Filename()
	}
	return t.filename
}

/* SetFilename is a no-op on tables with a parent. */
func (t *Table) SetFilename(fname string) {
	if t.Parent == nil {
		t.filename = fname
	}
}

/*
	BuildTagPath returns the full xpath to the tag containing records
	for this table, starting from the root tag.
*/
func (t *Table) BuildTagPath() string {
	tag := t.TopTag
	if t.Parent != nil {
		tag = t.Parent.BuildTagPath()
	}
	if t.TagName != "" {
		return tag + "/" + t.TagName
	}
	return tag
}

/*
	GetHashKey computes the hash_id value for a row: sha256 over the
	string form of every hash key column, in declared order.
*/
func (t *Table) GetHashKey(row Row) (string, error) {
	m := sha256.New()
	for _, key := range t.HashKey {
		v, ok := row[key]
		if !ok {
			cmn.PrintflnError("hash key column %s missing in row %v", key, row)
			return "", errTable(t.Name, "row has no hash key column %s", key)
		}
		m.Write([]byte(fmt.Sprint(v)))
	}
	return hex.EncodeToString(m.Sum(nil)), nil
}
