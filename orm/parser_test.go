package orm

import (
	"io/ioutil"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDecls(t *testing.T, decls map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range decls {
		err := ioutil.WriteFile(path.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}
	return dir
}

const peopleYml = `table:
  name: people
  top_tag: person/record
  columns:
    - name: name
      not_null: true
    - name: last_name
      not_null: true
    - name: age
      type: integer
  hash_key: [name, last_name]
  indexes:
    - name: ix_people_name
      columns: [name]
      unique: true
`

const employersYml = `table:
  name: employers
  parent: people
  tag_name: employers/employer
  columns:
    - name: name
      not_null: true
    - name: address
`

func TestParseDir(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"01_people.yml":    peopleYml,
		"02_employers.yml": employersYml,
		"readme.txt":       "not a declaration",
	})

	tables, indexes, err := ParseDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	people, employers := tables[0], tables[1]
	assert.Equal(t, "people", people.Name)
	assert.Equal(t, "person/record", people.TopTag)
	assert.NotNil(t, people.Column("hash_id"))
	assert.Equal(t, Integer{}, people.Column("age").Type)

	assert.Equal(t, "employers", employers.Name)
	assert.Equal(t, people, employers.Parent)
	assert.NotNil(t, employers.Column("parent_hash"))
	assert.Equal(t, "people.xml", employers.Filename())

	require.Len(t, indexes, 1)
	assert.Equal(t, "ix_people_name", indexes[0].Name)
	assert.Equal(t, people, indexes[0].Table)
	assert.True(t, indexes[0].Unique)
}

func TestParseDirDefaultTopTag(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"users.yml": `table:
  name: users
  columns:
    - name: name
`,
	})

	tables, _, err := ParseDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, TopLevelTag, tables[0].TopTag)
}

func TestParseDirFilenameOverride(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"users.yml": `table:
  name: users
  filename: dataset.xml
  columns:
    - name: name
`,
	})

	tables, _, err := ParseDir(dir)
	require.NoError(t, err)
	assert.Equal(t, "dataset.xml", tables[0].Filename())
}

func TestParseDirCharType(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"users.yml": `table:
  name: users
  columns:
    - name: code
      type: char
      length: 2
    - name: name
      type: varchar
      length: 30
`,
	})

	tables, _, err := ParseDir(dir)
	require.NoError(t, err)
	assert.Equal(t, Char{Length: 2}, tables[0].Column("code").Type)
	assert.Equal(t, Varchar{Length: 30}, tables[0].Column("name").Type)
}

func TestParseDirUnknownType(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"users.yml": `table:
  name: users
  columns:
    - name: name
      type: blob
`,
	})

	_, _, err := ParseDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
	assert.Contains(t, err.Error(), "blob")
}

func TestParseDirUnknownParent(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"employers.yml": employersYml,
	})

	_, _, err := ParseDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parent table people")
}

func TestParseDirHashKeyConflict(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"users.yml": `table:
  name: users
  columns:
    - name: id
      primary_key: true
    - name: name
  hash_key: [name]
`,
	})

	_, _, err := ParseDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hash key")
}

func TestParseDirExplicitForeignKey(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"01_people.yml": peopleYml,
		"02_users.yml": `table:
  name: users
  columns:
    - name: person_hash
  foreign_keys:
    - name: person_hash
      table: people
      column: hash_id
`,
	})

	tables, _, err := ParseDir(dir)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	users := tables[1]
	require.Len(t, users.ForeignKeys, 1)
	assert.Equal(t, "people", users.ForeignKeys[0].Table.Name)
	assert.Equal(t, "hash_id", users.ForeignKeys[0].Column.Name)
}

func TestParseDirNoTable(t *testing.T) {
	dir := writeDecls(t, map[string]string{
		"users.yml": `foo: bar
`,
	})

	_, _, err := ParseDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no table defined")
}
