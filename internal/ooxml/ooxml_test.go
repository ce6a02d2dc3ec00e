package ooxml_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/internal/ooxml"
	"github.com/goliatone/go-formfill/pkg/checkbox"
	"github.com/goliatone/go-formfill/pkg/document"
	"github.com/goliatone/go-formfill/pkg/testsupport"
)

func loadFixture(t *testing.T, body ...string) *ooxml.Document {
	t.Helper()
	doc, err := ooxml.Read(testsupport.BuildDocx(t, body...))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return doc
}

func roundTrip(t *testing.T, doc *ooxml.Document) *ooxml.Document {
	t.Helper()
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := ooxml.Read(buf.Bytes())
	if err != nil {
		t.Fatalf("re-read: %v", err)
	}
	return out
}

func cellTexts(doc document.Document) [][]string {
	var out [][]string
	for _, tbl := range doc.Tables() {
		for _, row := range tbl.Rows() {
			var line []string
			for _, cell := range row.Cells() {
				line = append(line, cell.Text())
			}
			out = append(out, line)
		}
	}
	return out
}

func TestReadExposesTablesAndParagraphs(t *testing.T) {
	doc := loadFixture(t,
		testsupport.ParagraphXML("Project Name: TBD"),
		testsupport.TableXML(
			[]string{"Design Consultant:", "old"},
			[]string{"Curb Ramp Location:\nsecond line", ""},
		),
	)

	want := [][]string{
		{"Design Consultant:", "old"},
		{"Curb Ramp Location:\nsecond line", ""},
	}
	if diff := cmp.Diff(want, cellTexts(doc)); diff != "" {
		t.Fatalf("cell text mismatch (-want +got):\n%s", diff)
	}

	paragraphs := doc.Paragraphs()
	if len(paragraphs) != 1 || paragraphs[0].Text() != "Project Name: TBD" {
		t.Fatalf("unexpected body paragraphs: %d", len(paragraphs))
	}
}

func TestCellSetTextSurvivesRoundTrip(t *testing.T) {
	doc := loadFixture(t, testsupport.TableXML([]string{"Design Engineer:", "stale\nvalue"}))

	cell := doc.Tables()[0].Rows()[0].Cells()[1]
	cell.SetText("Jim Bui")

	got := roundTrip(t, doc)
	want := [][]string{{"Design Engineer:", "Jim Bui"}}
	if diff := cmp.Diff(want, cellTexts(got)); diff != "" {
		t.Fatalf("cell text mismatch (-want +got):\n%s", diff)
	}
}

func TestAddRunSplitsTabsAndBreaks(t *testing.T) {
	doc := loadFixture(t, testsupport.TableXML([]string{""}))

	cell := doc.Tables()[0].Rows()[0].Cells()[0]
	cell.Paragraphs()[0].Clear()
	cell.Paragraphs()[0].AddRun("Intersection:\tMain St\nReturn position:")

	got := roundTrip(t, doc).Tables()[0].Rows()[0].Cells()[0].Text()
	if want := "Intersection:\tMain St\nReturn position:"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRunPropertiesKeepSchemaOrder(t *testing.T) {
	doc := loadFixture(t, testsupport.TableXML([]string{"x"}))

	p := doc.Tables()[0].Rows()[0].Cells()[0].Paragraphs()[0]
	p.Clear()
	run := p.AddRun("NCE")
	run.SetSize(12)
	run.SetBold(true)
	run.SetFontName("Times New Roman")

	if run.FontName() != "Times New Roman" || !run.Bold() || run.Size() != 12 {
		t.Fatalf("unexpected run props: font=%q bold=%v size=%v", run.FontName(), run.Bold(), run.Size())
	}

	var buf bytes.Buffer
	if _, err := roundTrip(t, doc).WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "out.docx", buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write out.docx: %v", err)
	}
	xml := testsupport.ReadPart(t, fsys, "out.docx", "word/document.xml")

	fonts := strings.Index(xml, "<w:rFonts")
	bold := strings.Index(xml, "<w:b/>")
	size := strings.Index(xml, `<w:sz w:val="24"/>`)
	if fonts < 0 || bold < 0 || size < 0 {
		t.Fatalf("missing run properties in %s", xml)
	}
	if !(fonts < bold && bold < size) {
		t.Fatalf("run properties out of order: rFonts=%d b=%d sz=%d", fonts, bold, size)
	}
}

func TestSetBoldFalseWritesExplicitOff(t *testing.T) {
	doc := loadFixture(t, testsupport.TableXML([]string{"x"}))

	run := doc.Tables()[0].Rows()[0].Cells()[0].Paragraphs()[0].Runs()[0]
	run.SetBold(true)
	run.SetBold(false)
	if run.Bold() {
		t.Fatalf("expected bold to be off")
	}
}

func TestFormFieldsInDocumentOrder(t *testing.T) {
	doc := loadFixture(t,
		testsupport.CheckBoxXML("Check1", false),
		testsupport.TableXML([]string{"cell"}),
		testsupport.TextInputXML("Text1"),
		testsupport.CheckBoxXML("Check2", true),
	)

	type view struct {
		Name    string
		Type    int
		Checked bool
	}
	var got []view
	for _, f := range doc.FormFields() {
		got = append(got, view{Name: f.Name(), Type: f.Type(), Checked: f.Checked()})
	}
	want := []view{
		{Name: "Check1", Type: checkbox.TypeCheckBox},
		{Name: "Text1", Type: checkbox.TypeTextInput},
		{Name: "Check2", Type: checkbox.TypeCheckBox, Checked: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("form fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSetCheckedRejectsTextInput(t *testing.T) {
	doc := loadFixture(t, testsupport.TextInputXML("Text1"))

	err := doc.FormFields()[0].SetChecked(true)
	if !errors.Is(err, checkbox.ErrNotCheckBox) {
		t.Fatalf("expected ErrNotCheckBox, got %v", err)
	}
}

func TestAutomationMarksCheckboxes(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testsupport.WriteDocx(t, fsys, "/out/form.docx",
		testsupport.CheckBoxXML("Hydrant", false),
		testsupport.TextInputXML("Notes"),
		testsupport.CheckBoxXML("Pole", false),
	)

	marker := checkbox.NewMarker(ooxml.NewAutomation(fsys))
	report, err := marker.Mark(testsupport.Context(), "/out/form.docx", []checkbox.Target{
		{Position: 1, Label: "Hydrant"},
		{Position: 2, Label: "Notes"},
		{Position: 3, Label: "Pole"},
	})
	if err != nil {
		t.Fatalf("mark: %v", err)
	}
	if report.State != checkbox.StateClosed {
		t.Fatalf("expected closed state, got %s", report.State)
	}
	if len(report.Marked) != 2 || len(report.Skipped) != 1 {
		t.Fatalf("expected 2 marked and 1 skipped, got %+v", report)
	}

	data, err := afero.ReadFile(fsys, "/out/form.docx")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	doc, err := ooxml.Read(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var checked []bool
	for _, f := range doc.FormFields() {
		checked = append(checked, f.Checked())
	}
	if diff := cmp.Diff([]bool{true, false, true}, checked); diff != "" {
		t.Fatalf("checked state mismatch (-want +got):\n%s", diff)
	}
}

func TestAutomationPositionOutOfRange(t *testing.T) {
	fsys := afero.NewMemMapFs()
	testsupport.WriteDocx(t, fsys, "form.docx", testsupport.CheckBoxXML("Only", false))

	marker := checkbox.NewMarker(ooxml.NewAutomation(fsys))
	report, err := marker.Mark(testsupport.Context(), "form.docx", []checkbox.Target{{Position: 4, Label: "Missing"}})
	if !errors.Is(err, checkbox.ErrPositionOutOfRange) {
		t.Fatalf("expected ErrPositionOutOfRange, got %v", err)
	}
	if report.State != checkbox.StateClosedWithError {
		t.Fatalf("expected closed_with_error, got %s", report.State)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := ooxml.NewOpener(afero.NewMemMapFs()).Open(testsupport.Context(), "missing.docx")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
