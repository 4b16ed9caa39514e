package snowtype

import (
	"errors"
	"testing"
)

type healthMetrics struct {
	Items []struct {
		Count int `json:"count"`
	} `json:"items"`
}

func TestRegistryLookupIsImmutable(t *testing.T) {
	parsers := map[string]DelegateParser{
		"HealthMetrics": JSONParser[healthMetrics](),
	}
	reg := NewRegistry(parsers)

	if _, ok := reg.Lookup("HealthMetrics"); !ok {
		t.Fatal("Lookup(HealthMetrics) = false, want true")
	}
	if _, ok := reg.Lookup("Missing"); ok {
		t.Error("Lookup(Missing) = true, want false")
	}

	delete(parsers, "HealthMetrics")
	if _, ok := reg.Lookup("HealthMetrics"); !ok {
		t.Error("registry lost entry after caller mutated source map")
	}
}

func TestRegistryParse(t *testing.T) {
	reg := NewRegistry(map[string]DelegateParser{
		"HealthMetrics": JSONParser[healthMetrics](),
	})

	v, err := reg.Parse("HealthMetrics", `{"items":[{"count":2}]}`)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	m, ok := v.(healthMetrics)
	if !ok || len(m.Items) != 1 || m.Items[0].Count != 2 {
		t.Errorf("Parse = %#v", v)
	}

	_, err = reg.Parse("HealthMetrics", "not json")
	var de *DelegateError
	if !errors.As(err, &de) {
		t.Fatalf("bad payload error = %v, want *DelegateError", err)
	}

	_, err = reg.Parse("Missing", "{}")
	if !errors.As(err, &de) || de.TypeRef != "Missing" {
		t.Fatalf("unregistered error = %v, want *DelegateError naming Missing", err)
	}
}

func TestDelegateField(t *testing.T) {
	reg := NewRegistry(map[string]DelegateParser{
		"HealthMetrics": JSONParser[healthMetrics](),
	})

	type rec struct{ Metrics healthMetrics }
	s := NewSchema("PUBLIC.MENU",
		DelegateField("METRICS", "HealthMetrics", reg,
			func(r *rec, v any) { r.Metrics = v.(healthMetrics) }),
	)

	got, err := s.DecodeRow([]*string{strp(`{"items":[{"count":3}]}`)})
	if err != nil {
		t.Fatalf("DecodeRow error: %v", err)
	}
	if len(got.Metrics.Items) != 1 || got.Metrics.Items[0].Count != 3 {
		t.Errorf("decoded metrics = %+v", got.Metrics)
	}

	_, err = s.DecodeRow([]*string{strp("not json")})
	var de *DelegateError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DelegateError", err)
	}
	if de.TypeRef == "" {
		t.Errorf("DelegateError.TypeRef is empty")
	}
}

// A custom parser's plain error is tagged with the type reference so row
// failures name the delegate that produced them.
func TestDelegateFieldWrapsForeignErrors(t *testing.T) {
	errParse := errors.New("parse failed")
	reg := NewRegistry(map[string]DelegateParser{
		"Custom": func(raw string) (any, error) { return nil, errParse },
	})

	type rec struct{ V any }
	s := NewSchema("PUBLIC.T",
		DelegateField("V", "Custom", reg, func(r *rec, v any) { r.V = v }),
	)

	_, err := s.DecodeRow([]*string{strp("x")})
	var de *DelegateError
	if !errors.As(err, &de) {
		t.Fatalf("error = %v, want *DelegateError", err)
	}
	if de.TypeRef != "Custom" || !errors.Is(de, errParse) {
		t.Errorf("DelegateError = %+v", de)
	}
}

func TestDelegateFieldMissingRegistrationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("DelegateField with unregistered type did not panic")
		}
	}()
	type rec struct{ V any }
	DelegateField("V", "Missing", NewRegistry(nil), func(r *rec, v any) { r.V = v })
}

func TestNullDelegateField(t *testing.T) {
	calls := 0
	reg := NewRegistry(map[string]DelegateParser{
		"Custom": func(raw string) (any, error) { calls++; return raw, nil },
	})

	type rec struct{ V any }
	s := NewSchema("PUBLIC.T",
		NullDelegateField("V", "Custom", reg, func(r *rec, v any) { r.V = v }),
	)

	got, err := s.DecodeRow([]*string{nil})
	if err != nil {
		t.Fatalf("DecodeRow error: %v", err)
	}
	if got.V != nil || calls != 0 {
		t.Errorf("null cell: V = %v, parser calls = %d", got.V, calls)
	}

	got, err = s.DecodeRow([]*string{strp("x")})
	if err != nil || got.V != "x" {
		t.Fatalf("DecodeRow = %+v, %v", got, err)
	}
}
