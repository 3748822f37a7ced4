package prototype

// Resolved pairs a prototype name with its merged components.
type Resolved struct {
	Name       string
	Components *Components
}

// Resolver expands records of a Table into merged component sets.
type Resolver struct {
	Table    *Table
	Reporter Reporter
	// Merged, when set, is called each time a record's components are
	// applied to the set being built for root.
	Merged func(root string, rec *Record)
}

// Resolve returns the merged components of root using a default Resolver.
func Resolve(table *Table, root string, reporter Reporter) *Components {
	return Resolver{Table: table, Reporter: reporter}.Resolve(root)
}

// ResolveAll resolves every record of table using a default Resolver.
func ResolveAll(table *Table, reporter Reporter) []Resolved {
	return Resolver{Table: table, Reporter: reporter}.ResolveAll()
}

// ResolveAll resolves every record in ascending name order. Each resolution
// is independent; issues for one entity never affect another.
func (r Resolver) ResolveAll() []Resolved {
	if r.Table == nil {
		return nil
	}
	names := r.Table.Names()
	out := make([]Resolved, 0, len(names))
	for _, name := range names {
		out = append(out, Resolved{Name: name, Components: r.Resolve(name)})
	}
	return out
}

// frame is one record on the expansion stack; next indexes the parent to
// visit when the frame is on top again.
type frame struct {
	rec  *Record
	next int
}

// Resolve merges root with its ancestors.
//
// Records are expanded depth-first in declared parent order and merged in
// post-order, so every ancestor is applied before its descendants and a
// later-declared parent overrides an earlier one. A record already visited
// for this root is skipped, which applies diamond ancestors once and stops
// cycles at the record that closes the loop. A missing record is reported
// as IssueUnknownParent and contributes nothing.
func (r Resolver) Resolve(root string) *Components {
	reporter := reporterOrDiscard(r.Reporter)
	resolved := &Components{}
	if r.Table == nil {
		reporter.ReportIssue(Issue{Kind: IssueUnknownParent, Entity: root, Detail: root})
		return resolved
	}

	rec, ok := r.Table.Lookup(root)
	if !ok {
		reporter.ReportIssue(Issue{Kind: IssueUnknownParent, Entity: root, Detail: root})
		return resolved
	}
	visited := map[string]struct{}{root: {}}
	stack := []frame{{rec: rec}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.rec.ParentNames) {
			parent := top.rec.ParentNames[top.next]
			top.next++
			if _, seen := visited[parent]; seen {
				continue
			}
			prec, ok := r.Table.Lookup(parent)
			if !ok {
				reporter.ReportIssue(Issue{Kind: IssueUnknownParent, Entity: root, Detail: parent})
				continue
			}
			visited[parent] = struct{}{}
			stack = append(stack, frame{rec: prec})
			continue
		}

		resolved.Merge(top.rec.Components)
		if r.Merged != nil {
			r.Merged(root, top.rec)
		}
		stack = stack[:len(stack)-1]
	}
	return resolved
}
