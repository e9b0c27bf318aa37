package blob

import (
	"errors"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Terms []int  `json:"terms"`
}

func TestEncodeDecode(t *testing.T) {
	raw, err := Encode(sample{Name: "B", Terms: []int{6, 12}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := `{"v":1,"data":{"name":"B","terms":[6,12]}}`; string(raw) != want {
		t.Fatalf("raw=%s want %s", raw, want)
	}

	var fromBytes, fromString sample
	if err := Decode(raw, &fromBytes); err != nil {
		t.Fatalf("decode bytes: %v", err)
	}
	if err := Decode(string(raw), &fromString); err != nil {
		t.Fatalf("decode string: %v", err)
	}
	if fromBytes.Name != "B" || len(fromString.Terms) != 2 {
		t.Fatalf("unexpected decode: %+v %+v", fromBytes, fromString)
	}
}

func TestDecode_NilAndEmpty(t *testing.T) {
	s := sample{Name: "keep"}
	if err := Decode(nil, &s); err != nil || s.Name != "keep" {
		t.Fatalf("nil src: %v %+v", err, s)
	}
	if err := Decode([]byte{}, &s); err != nil || s.Name != "keep" {
		t.Fatalf("empty src: %v %+v", err, s)
	}
}

func TestDecode_UnknownVersion(t *testing.T) {
	var s sample
	err := Decode(`{"v":2,"data":{"name":"x"}}`, &s)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("want ErrUnsupportedVersion, got %v", err)
	}
}

func TestDecode_BadSource(t *testing.T) {
	var s sample
	if err := Decode(42, &s); err == nil {
		t.Fatal("want error for int source")
	}
	if err := Decode("{not json", &s); err == nil {
		t.Fatal("want error for malformed json")
	}
}
