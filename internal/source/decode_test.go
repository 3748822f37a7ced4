package source

import (
	"reflect"
	"strings"
	"testing"

	"prototypecore/pkg/prototype"
)

func pairs(s prototype.Section) []prototype.Pair { return s.Components.Pairs() }

func TestDecodeSectionsPreservesOrder(t *testing.T) {
	doc := `
Monster:
  Health: "100"
  Sprite: monster.png
"Goblin: Monster, Humanoid":
  Speed: 3
  Armor: light
`
	sections, err := DecodeSections(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Header != "Monster" || sections[1].Header != "Goblin: Monster, Humanoid" {
		t.Fatalf("unexpected headers %q %q", sections[0].Header, sections[1].Header)
	}
	want := []prototype.Pair{{Key: "Speed", Value: "3"}, {Key: "Armor", Value: "light"}}
	if got := pairs(sections[1]); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDecodeSectionsKeepsDuplicateHeaders(t *testing.T) {
	doc := "A:\n  x: \"1\"\nA:\n  y: \"2\"\n"
	sections, err := DecodeSections(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sections) != 2 || sections[0].Header != "A" || sections[1].Header != "A" {
		t.Fatalf("expected both A sections, got %+v", sections)
	}
}

func TestDecodeSectionsEmptyBodies(t *testing.T) {
	doc := "Empty:\nBraces: {}\n"
	sections, err := DecodeSections(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	for _, s := range sections {
		if s.Components.Len() != 0 {
			t.Fatalf("expected no components for %s", s.Header)
		}
	}
}

func TestDecodeSectionsMultipleDocuments(t *testing.T) {
	doc := "A:\n  k: v\n---\n---\nB:\n  k: w\n"
	sections, err := DecodeSections(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(sections) != 2 || sections[0].Header != "A" || sections[1].Header != "B" {
		t.Fatalf("unexpected sections %+v", sections)
	}
}

func TestDecodeSectionsFollowsAliases(t *testing.T) {
	doc := "A: &base\n  k: &v shared\nB: *base\nC:\n  j: *v\n"
	sections, err := DecodeSections(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, _ := sections[1].Components.Get("k"); v != "shared" {
		t.Fatalf("expected aliased body, got %q", v)
	}
	if v, _ := sections[2].Components.Get("j"); v != "shared" {
		t.Fatalf("expected aliased value, got %q", v)
	}
}

func TestDecodeSectionsEmptyInput(t *testing.T) {
	sections, err := DecodeSections(strings.NewReader(""))
	if err != nil || len(sections) != 0 {
		t.Fatalf("expected no sections, got %v (%v)", sections, err)
	}
}

func TestDecodeSectionsRejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"sequence document": "- a\n- b\n",
		"scalar body":       "A: nope\n",
		"nested value":      "A:\n  k:\n    deep: 1\n",
		"list value":        "A:\n  k: [1, 2]\n",
		"mapping header":    "? {a: 1}\n: {}\n",
		"syntax":            "A: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeSections(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error for %q", doc)
			}
		})
	}
}
