package debuginfo_test

import (
	stderrors "errors"
	"testing"

	wasmsourcemap "github.com/wippyai/wasm-sourcemap"
	"github.com/wippyai/wasm-sourcemap/debuginfo"
	"github.com/wippyai/wasm-sourcemap/errors"
	"github.com/wippyai/wasm-sourcemap/testbed"
)

func TestUnits(t *testing.T) {
	sections := testbed.DebugSections(
		testbed.UnitConfig{
			Name:     "main.c",
			CompDir:  "/src",
			Language: wasmsourcemap.LangC99,
			Files:    []string{"main.c"},
		},
		testbed.UnitConfig{
			Name:     "lib.rs",
			CompDir:  "/crate",
			Language: wasmsourcemap.LangRust,
			Files:    []string{"lib.rs"},
		},
	)

	src, err := debuginfo.New(sections)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	units, err := src.Units()
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected 2 units, got %d", len(units))
	}

	if units[0].Name() != "main.c" || units[0].CompDir() != "/src" || units[0].Language() != wasmsourcemap.LangC99 {
		t.Errorf("unit 0: %q %q %#x", units[0].Name(), units[0].CompDir(), units[0].Language())
	}
	if units[1].Name() != "lib.rs" || units[1].CompDir() != "/crate" || units[1].Language() != wasmsourcemap.LangRust {
		t.Errorf("unit 1: %q %q %#x", units[1].Name(), units[1].CompDir(), units[1].Language())
	}
}

func TestLineRows(t *testing.T) {
	sections := testbed.DebugSections(testbed.UnitConfig{
		Name:     "main.c",
		CompDir:  "/src",
		Language: wasmsourcemap.LangC99,
		Files:    []string{"main.c"},
		Program: func(p *testbed.LineProgram) {
			p.SetAddress(0x10)
			p.AdvanceLine(2)
			p.SetColumn(5)
			p.Copy()
			p.AdvancePC(4)
			p.AdvanceLine(1)
			p.Copy()
			p.AdvancePC(4)
			p.EndSequence()
		},
	})

	src, err := debuginfo.New(sections)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	units, err := src.Units()
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	rows, err := units[0].Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if rows == nil {
		t.Fatal("expected a line reader")
	}

	var got []wasmsourcemap.Row
	var row wasmsourcemap.Row
	for {
		ok, err := rows.Next(&row)
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, row)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(got), got)
	}

	r := got[0]
	if r.Address != 0x10 || r.Line != 3 || r.Column != 5 || r.EndSequence {
		t.Errorf("row 0: %+v", r)
	}
	if r.File == nil || r.File.PathName != "/src/main.c" {
		t.Errorf("row 0 file: %+v", r.File)
	}

	r = got[1]
	if r.Address != 0x14 || r.Line != 4 {
		t.Errorf("row 1: %+v", r)
	}

	r = got[2]
	if r.Address != 0x18 || !r.EndSequence {
		t.Errorf("row 2: %+v", r)
	}
}

func TestEmptyLineProgram(t *testing.T) {
	sections := testbed.DebugSections(testbed.UnitConfig{
		Name:     "empty.c",
		CompDir:  "/src",
		Language: wasmsourcemap.LangC99,
		Files:    []string{"empty.c"},
	})

	src, err := debuginfo.New(sections)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	units, err := src.Units()
	if err != nil {
		t.Fatalf("Units: %v", err)
	}
	rows, err := units[0].Lines()
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	if rows == nil {
		// No program at all is also an acceptable answer for an empty table.
		return
	}

	var row wasmsourcemap.Row
	ok, err := rows.Next(&row)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if ok {
		t.Errorf("expected no rows, got %+v", row)
	}
}

func TestMalformedInfo(t *testing.T) {
	sections := testbed.DebugSections(testbed.UnitConfig{
		Name:    "main.c",
		CompDir: "/src",
		Files:   []string{"main.c"},
	})
	// Truncate the unit so its declared length runs past the buffer.
	sections[".debug_info"] = sections[".debug_info"][:6]

	_, err := debuginfo.New(sections)
	if err == nil {
		t.Fatal("expected an error")
	}

	var se *errors.Error
	if !stderrors.As(err, &se) {
		t.Fatalf("expected structured error, got %v", err)
	}
	if se.Phase != errors.PhaseDebugInfo || se.Kind != errors.KindDecodeFailure {
		t.Errorf("got phase %s kind %s", se.Phase, se.Kind)
	}
}
