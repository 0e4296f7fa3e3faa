package orm

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

/*
	ReadRow maps one record element into a row. every declared column
	gets an entry, nil unless a direct child tag with the columns name
	carries text. integer and real columns get their text coerced,
	anything else stays a string. tags that dont match a column are
	ignored.
*/
func (t *Table) ReadRow(el *etree.Element) (Row, error) {
	row := make(Row, len(t.cols))
	for _, c := range t.cols {
		row[c.Name] = nil
	}

	for _, child := range el.ChildElements() {
		col, ok := t.byName[child.Tag]
		if !ok {
			continue
		}
		val := child.Text()
		if val == "" {
			/* empty tag stays null, never coerced */
			continue
		}
		switch col.Type.(type) {
		case Integer:
			n, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				return nil, err
			}
			row[child.Tag] = n
		case Real:
			f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil {
				return nil, err
			}
			row[child.Tag] = f
		default:
			row[child.Tag] = val
		}
	}
	return row, nil
}

/*
	ReadTable parses the tables xml file under dataDir and returns its
	rows in document order. for tables with a hash key every row gets
	its hash_id filled in, for child tables every row gets the
	parent_hash of the record it was found under.
*/
func (t *Table) ReadTable(dataDir string) ([]Row, error) {
	// TODO: fix this to do a proper path join.
	fname := dataDir + "/" + t.Filename()

	doc := etree.NewDocument()
	if err := doc.ReadFromFile(fname); err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil {
		return nil, errTable(t.Name, "no root element in %s", fname)
	}

	if t.Parent != nil {
		return t.readChild(root)
	}
	return t.readRoot(root)
}

func (t *Table) readRoot(root *etree.Element) ([]Row, error) {
	var data []Row
	for _, el := range root.FindElements(t.BuildTagPath()) {
		row, err := t.ReadRow(el)
		if err != nil {
			return nil, err
		}
		if len(t.HashKey) > 0 {
			h, err := t.GetHashKey(row)
			if err != nil {
				return nil, err
			}
			row["hash_id"] = h
		}
		data = append(data, row)
	}
	return data, nil
}

func (t *Table) readChild(root *etree.Element) ([]Row, error) {
	if len(t.Parent.HashKey) == 0 {
		return nil, errTable(t.Name,
			"parent table %s has no hash key", t.Parent.Name)
	}

	var data []Row
	for _, parent := range root.FindElements(t.Parent.BuildTagPath()) {
		prow, err := t.Parent.ReadRow(parent)
		if err != nil {
			return nil, err
		}
		phash, err := t.Parent.GetHashKey(prow)
		if err != nil {
			return nil, err
		}
		for _, el := range parent.FindElements(t.TagName) {
			row, err := t.ReadRow(el)
			if err != nil {
				return nil, err
			}
			row["parent_hash"] = phash
			data = append(data, row)
		}
	}
	return data, nil
}
