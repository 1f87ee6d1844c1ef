package diag

import (
	"testing"

	"hlsltools/internal/source"
)

func TestBagLimitAndSeverity(t *testing.T) {
	b := NewBag(2)
	sp := source.Span{File: 1, Start: 0, End: 1}
	if !b.Add(New(SevWarning, SemaLoopVariableConflict, sp, "w")) {
		t.Fatal("first add must succeed")
	}
	if b.HasErrors() {
		t.Fatal("warning must not count as error")
	}
	if !b.HasWarnings() {
		t.Fatal("expected warnings")
	}
	b.Add(NewError(SemaUndeclaredIdentifier, sp, "e"))
	if b.Add(NewError(SemaUndeclaredIdentifier, sp, "dropped")) {
		t.Fatal("limit must reject third diagnostic")
	}
	if b.Len() != 2 || !b.HasErrors() {
		t.Fatalf("unexpected bag state: len=%d", b.Len())
	}
}

func TestBagUnlimited(t *testing.T) {
	b := NewBag(0)
	for i := range 100 {
		b.Add(NewError(SemaCannotConvert, source.Span{Start: uint32(i), End: uint32(i)}, "x"))
	}
	if b.Len() != 100 {
		t.Fatalf("len = %d, want 100", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(SemaCannotConvert, source.Span{File: 1, Start: 10, End: 12}, "late"))
	b.Add(New(SevWarning, SemaImplicitTruncation, source.Span{File: 1, Start: 2, End: 3}, "early"))
	b.Add(NewError(SemaCannotConvert, source.Span{File: 1, Start: 2, End: 3}, "early error"))
	b.Add(NewError(SemaCannotConvert, source.Span{File: 1, Start: 10, End: 12}, "late"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("dedup left %d items", b.Len())
	}
	b.Sort()
	items := b.Items()
	if items[0].Message != "early error" || items[1].Message != "early" || items[2].Message != "late" {
		t.Fatalf("unexpected order: %q %q %q", items[0].Message, items[1].Message, items[2].Message)
	}
}

func TestBagFilter(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, SemaLoopVariableConflict, source.Span{}, "w"))
	b.Add(NewError(SemaUndeclaredIdentifier, source.Span{}, "e"))
	b.Filter(func(d *Diagnostic) bool { return d.Severity == SevError })
	if b.Len() != 1 || b.Items()[0].Code != SemaUndeclaredIdentifier {
		t.Fatal("filter kept the wrong diagnostics")
	}
}

func TestCodeID(t *testing.T) {
	cases := map[Code]string{
		SemaUndeclaredIdentifier: "X3004",
		SemaAmbiguousCall:        "X3067",
		SynUnexpectedToken:       "SYN1001",
		IOLoadFileError:          "IO4001",
		ObsTimings:               "OBS6001",
		UnknownCode:              "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if Code(3999).Title() != UnknownCode.Title() {
		t.Error("unknown codes must fall back to the generic title")
	}
}
