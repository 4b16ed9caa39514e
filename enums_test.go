package snowtype

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEnumSpec(t *testing.T) {
	spec, err := newEnumSpec("MenuType", []string{"Ice Cream", "BBQ", "Mac & Cheese"})
	if err != nil {
		t.Fatalf("newEnumSpec error: %v", err)
	}
	want := []EnumVariant{
		{Source: "Ice Cream", Ident: "IceCream"},
		{Source: "BBQ", Ident: "Bbq"},
		{Source: "Mac & Cheese", Ident: "MacCheese"},
	}
	if len(spec.Variants) != len(want) {
		t.Fatalf("got %d variants, want %d", len(spec.Variants), len(want))
	}
	for i := range want {
		if spec.Variants[i] != want[i] {
			t.Errorf("variant %d = %+v, want %+v", i, spec.Variants[i], want[i])
		}
	}
}

func TestNewEnumSpecRejectsDuplicates(t *testing.T) {
	if _, err := newEnumSpec("MenuType", []string{"BBQ", "BBQ"}); err == nil {
		t.Fatal("expected error for duplicate source strings")
	}
	// Distinct sources colliding on the normalized identifier are just as
	// ambiguous.
	if _, err := newEnumSpec("MenuType", []string{"Hot Dogs", "hot dogs"}); err == nil {
		t.Fatal("expected error for colliding identifiers")
	}
	_, err := newEnumSpec("MenuType", []string{"&&"})
	if err == nil || !strings.Contains(err.Error(), "empty identifier") {
		t.Fatalf("err = %v, want empty identifier error", err)
	}
}

type menuType int

const (
	menuIceCream menuType = iota
	menuBBQ
)

func (e menuType) String() string {
	switch e {
	case menuIceCream:
		return "Ice Cream"
	case menuBBQ:
		return "BBQ"
	}
	return "unknown"
}

func menuTable() *EnumTable[menuType] {
	return NewEnumTable("menuType",
		Variant[menuType]{Source: "Ice Cream", Value: menuIceCream},
		Variant[menuType]{Source: "BBQ", Value: menuBBQ},
	)
}

func TestEnumTableParse(t *testing.T) {
	table := menuTable()

	got, err := table.Parse("Ice Cream")
	if err != nil || got != menuIceCream {
		t.Fatalf("Parse(Ice Cream) = %v, %v", got, err)
	}
	got, err = table.Parse("BBQ")
	if err != nil || got != menuBBQ {
		t.Fatalf("Parse(BBQ) = %v, %v", got, err)
	}
}

// Matching is exact and case-sensitive, with no default variant.
func TestEnumTableParseExactMatchOnly(t *testing.T) {
	table := menuTable()

	for _, raw := range []string{"ice cream", "ICE CREAM", "Ice  Cream", "Tacos", ""} {
		_, err := table.Parse(raw)
		if err == nil {
			t.Fatalf("Parse(%q) succeeded, want EnumMatchError", raw)
		}
		var em *EnumMatchError
		if !errors.As(err, &em) {
			t.Fatalf("Parse(%q) error = %v, want *EnumMatchError", raw, err)
		}
		if em.Enum != "menuType" || em.Value != raw {
			t.Errorf("EnumMatchError = %+v, want enum menuType, value %q", em, raw)
		}
	}
}
