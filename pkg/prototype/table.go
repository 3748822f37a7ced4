package prototype

import "sort"

// Section is one block of a prototype definition: a raw header and its
// ordered component payload.
type Section struct {
	Header     string
	Components *Components
}

// Record is a prototype as declared, before inheritance is applied.
type Record struct {
	Name        string
	ParentNames []string
	Components  *Components
}

// Table indexes records by name for a single load.
type Table struct {
	records map[string]*Record
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{records: make(map[string]*Record)}
}

// BuildTable parses every section header and indexes the resulting records.
// A section whose name is already present replaces the earlier record's
// parents and components wholesale; each replacement is reported as
// IssueDuplicateName. Parent names are not checked here.
func BuildTable(sections []Section, reporter Reporter) *Table {
	reporter = reporterOrDiscard(reporter)
	table := NewTable()
	for _, section := range sections {
		name, parents := ParseHeader(section.Header)
		replaced := table.Put(Record{
			Name:        name,
			ParentNames: parents,
			Components:  section.Components.Clone(),
		})
		if replaced {
			reporter.ReportIssue(Issue{Kind: IssueDuplicateName, Entity: name, Detail: section.Header})
		}
	}
	return table
}

// Put stores rec under rec.Name and reports whether an existing record was replaced.
func (t *Table) Put(rec Record) bool {
	if rec.Components == nil {
		rec.Components = &Components{}
	}
	_, exists := t.records[rec.Name]
	t.records[rec.Name] = &rec
	return exists
}

// Lookup returns the record stored under name.
func (t *Table) Lookup(name string) (*Record, bool) {
	rec, ok := t.records[name]
	return rec, ok
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Names returns all record names in ascending order.
func (t *Table) Names() []string {
	out := make([]string, 0, len(t.records))
	for name := range t.records {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
