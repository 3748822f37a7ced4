package prototype

import (
	"reflect"
	"testing"
)

func TestParseHeader(t *testing.T) {
	cases := []struct {
		raw     string
		name    string
		parents []string
	}{
		{raw: "Monster", name: "Monster"},
		{raw: "  Monster ", name: "  Monster "},
		{raw: "Goblin:Monster", name: "Goblin", parents: []string{"Monster"}},
		{raw: "Goblin: Monster, Humanoid", name: "Goblin", parents: []string{"Monster", "Humanoid"}},
		{raw: "Goblin:  Monster ,\tHumanoid  ", name: "Goblin", parents: []string{"Monster", "Humanoid"}},
		{raw: "Goblin: Monster,", name: "Goblin", parents: []string{"Monster"}},
		{raw: "Goblin: , ,Monster", name: "Goblin", parents: []string{"Monster"}},
		{raw: "Goblin:", name: "Goblin"},
		{raw: ":Monster", name: "", parents: []string{"Monster"}},
		{raw: "A: B: C, D", name: "A", parents: []string{"B: C", "D"}},
		{raw: "", name: ""},
	}
	for _, tc := range cases {
		name, parents := ParseHeader(tc.raw)
		if name != tc.name {
			t.Fatalf("ParseHeader(%q) name = %q, want %q", tc.raw, name, tc.name)
		}
		if len(parents) == 0 && len(tc.parents) == 0 {
			continue
		}
		if !reflect.DeepEqual(parents, tc.parents) {
			t.Fatalf("ParseHeader(%q) parents = %q, want %q", tc.raw, parents, tc.parents)
		}
	}
}
