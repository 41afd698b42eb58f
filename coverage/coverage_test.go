package coverage

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)

	return b
}

func buildRecord(name string, fileIDs []uint32, expressions [][2][]uint32, regions [][2]uint32) []byte {
	var buf bytes.Buffer

	buf.Write(u32(uint32(len(name))))
	buf.WriteString(name)

	buf.Write(u32(uint32(len(fileIDs))))
	for _, id := range fileIDs {
		buf.Write(u32(id))
	}

	buf.Write(u32(uint32(len(expressions))))

	for _, expr := range expressions {
		add, sub := expr[0], expr[1]

		buf.Write(u32(uint32(len(add))))
		for _, a := range add {
			buf.Write(u32(a))
		}

		buf.Write(u32(uint32(len(sub))))
		for _, s := range sub {
			buf.Write(u32(s))
		}
	}

	buf.Write(u32(uint32(len(regions))))

	for _, r := range regions {
		buf.Write(u32(r[0]))
		buf.Write(u32(r[1]))
	}

	return buf.Bytes()
}

func TestNormalizeCancelsSharedTerms(t *testing.T) {
	e := Normalize([]int{1, 2, 2}, []int{2})

	if len(e.AddTerms) != 2 || e.AddTerms[0] != 1 || e.AddTerms[1] != 2 {
		t.Fatalf("expected one 2 to cancel, got AddTerms=%v", e.AddTerms)
	}

	if len(e.SubTerms) != 0 {
		t.Fatalf("expected SubTerms empty after cancellation, got %v", e.SubTerms)
	}
}

func TestExpressionEvaluateOverRawCounters(t *testing.T) {
	guard := NewGuardTable([]uint32{5, 3})
	e := Normalize([]int{0, 1}, nil)

	v, err := e.Evaluate(guard, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v != 8 {
		t.Fatalf("expected 5+3=8, got %d", v)
	}
}

func TestExpressionEvaluateRejectsUnresolvableTerm(t *testing.T) {
	guard := NewGuardTable([]uint32{5})
	e := Normalize([]int{99}, nil)

	if _, err := e.Evaluate(guard, nil); err == nil {
		t.Fatalf("expected error for unresolvable counter reference")
	}
}

func TestParseCovfunSingleRecord(t *testing.T) {
	data := buildRecord("fn_a", []uint32{7}, [][2][]uint32{{{0, 1}, nil}}, [][2]uint32{{7, 0}})

	records, err := ParseCovfun(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	if records[0].Name != "fn_a" {
		t.Fatalf("expected name fn_a, got %q", records[0].Name)
	}

	if len(records[0].Expressions) != 1 {
		t.Fatalf("expected 1 expression, got %d", len(records[0].Expressions))
	}
}

func TestParseCovfunTolerates8ByteAlignmentPadding(t *testing.T) {
	rec1 := buildRecord("a", nil, nil, nil)
	rec2 := buildRecord("bb", nil, nil, nil)

	var buf bytes.Buffer
	buf.Write(rec1)

	for buf.Len()%8 != 0 {
		buf.WriteByte(0)
	}

	buf.Write(rec2)

	records, err := ParseCovfun(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records despite padding, got %d", len(records))
	}

	if records[0].Name != "a" || records[1].Name != "bb" {
		t.Fatalf("unexpected record names: %+v", records)
	}
}

func TestParseCovfunRejectsOutOfRangeExpressionReference(t *testing.T) {
	data := buildRecord("bad", nil, nil, [][2]uint32{{0, 5}})

	if _, err := ParseCovfun(data); err == nil {
		t.Fatalf("expected error for region referencing out-of-range expression")
	}
}
