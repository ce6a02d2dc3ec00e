package orchestrator_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/goliatone/go-formfill/internal/ooxml"
	"github.com/goliatone/go-formfill/pkg/checkbox"
	"github.com/goliatone/go-formfill/pkg/document"
	"github.com/goliatone/go-formfill/pkg/fields"
	"github.com/goliatone/go-formfill/pkg/mutator"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	"github.com/goliatone/go-formfill/pkg/source"
	"github.com/goliatone/go-formfill/pkg/testsupport"
)

const sourceCSV = "ID,Location,Intersection\n" +
	"1,111.11 First St,A & B\n" +
	"2,\"123.45 (Lot 7) Main St\",Oak Ave & Pine St\n"

func templateBody() []string {
	return []string{
		testsupport.ParagraphXML("Curb Ramp Hardship Form"),
		testsupport.TableXML(
			[]string{"Design Consultant:", "Design Engineer:"},
			[]string{"Phone Number:", "Curb Ramp Location:"},
			[]string{"Project Name:", "Project #:"},
		),
		testsupport.CheckBoxXML("Hydrant", false),
		testsupport.TextInputXML("Notes"),
		testsupport.CheckBoxXML("Pole", false),
		testsupport.CheckBoxXML("Drain", false),
	}
}

func setup(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	testsupport.WriteDocx(t, fsys, "/in/form.docx", templateBody()...)
	if err := afero.WriteFile(fsys, "/in/ramps.csv", []byte(sourceCSV), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return fsys
}

func request() orchestrator.Request {
	return orchestrator.Request{
		Mode:           fields.ModeCombined,
		TemplatePath:   "/in/form.docx",
		SourcePath:     "/in/ramps.csv",
		SkipHeaderRows: 1,
		Columns:        source.DefaultColumns(),
		OutputFolder:   "/out",
		Font:           mutator.FontPolicy{Name: fields.DefaultFont},
		MarkCheckboxes: true,
	}
}

func TestFillEndToEnd(t *testing.T) {
	fsys := setup(t)

	result, err := orchestrator.New(orchestrator.WithFs(fsys)).Fill(testsupport.Context(), request())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}

	if result.OutputPath != "/out/Filled_Form_Location_45_Main_St.docx" {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}
	if result.CheckboxErr != nil {
		t.Fatalf("checkbox marking failed: %v", result.CheckboxErr)
	}

	data, err := afero.ReadFile(fsys, result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	doc, err := ooxml.Read(data)
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	var cells [][]string
	for _, row := range doc.Tables()[0].Rows() {
		var line []string
		for _, cell := range row.Cells() {
			line = append(line, cell.Text())
		}
		cells = append(cells, line)
	}
	want := [][]string{
		{"Design Consultant: NCE", "Design Engineer: Jim Bui"},
		{"Phone Number: (123) - 456- 7890\nEmail: ", "Curb Ramp Location:\n45 Main St\nIntersection: Oak Ave & Pine St"},
		{"Project Name: Redondo Beach Curb Ramp Rehab", "Project #: 123.45.678"},
	}
	if diff := cmp.Diff(want, cells); diff != "" {
		t.Fatalf("filled table mismatch (-want +got):\n%s", diff)
	}

	document.Walk(doc, func(p document.Paragraph) {
		for _, run := range p.Runs() {
			if run.FontName() != fields.DefaultFont {
				t.Fatalf("run %q has font %q", run.Text(), run.FontName())
			}
		}
	})

	var checked []bool
	for _, f := range doc.FormFields() {
		checked = append(checked, f.Checked())
	}
	// Profile targets positions 1-3; position 2 is a text field.
	if diff := cmp.Diff([]bool{true, false, true, false}, checked); diff != "" {
		t.Fatalf("checkbox state mismatch (-want +got):\n%s", diff)
	}
	if result.Checkboxes.State != checkbox.StateClosed || len(result.Checkboxes.Skipped) != 1 {
		t.Fatalf("unexpected checkbox report: %+v", result.Checkboxes)
	}

	template, err := afero.ReadFile(fsys, "/in/form.docx")
	if err != nil {
		t.Fatalf("read template: %v", err)
	}
	if diff := cmp.Diff(testsupport.BuildDocx(t, templateBody()...), template); diff != "" {
		t.Fatalf("template was modified")
	}
}

func TestFillSplitReadsFirstDataRow(t *testing.T) {
	fsys := setup(t)
	req := request()
	req.Mode = fields.ModeSplit
	req.Columns.Row = 0
	req.MarkCheckboxes = false

	result, err := orchestrator.New(orchestrator.WithFs(fsys)).Fill(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	want := source.Record{Location: "111.11 First St", Intersection: "A & B"}
	if diff := cmp.Diff(want, result.Record); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
	if result.OutputPath != "/out/Filled_Form_Location_11_First_St.docx" {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}
}

func TestFillPlaceholderDocx(t *testing.T) {
	fsys := setup(t)
	cell := func(label string) string {
		return `<w:tc><w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>` + label + `</w:t></w:r></w:p></w:tc>`
	}
	testsupport.WriteDocx(t, fsys, "/in/placeholder.docx",
		`<w:tbl><w:tr>`+cell(fields.LabelCRLocation)+cell(fields.LabelILocation)+`</w:tr></w:tbl>`,
	)
	req := request()
	req.Mode = fields.ModePlaceholder
	req.TemplatePath = "/in/placeholder.docx"
	req.FilenameTemplate = mutator.FixedFilename
	req.MarkCheckboxes = false

	result, err := orchestrator.New(orchestrator.WithFs(fsys)).Fill(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if result.OutputPath != "/out/Filled_Form.docx" {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}

	doc, err := ooxml.NewOpener(fsys).Load(testsupport.Context(), result.OutputPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	var got []string
	for _, c := range doc.Tables()[0].Rows()[0].Cells() {
		got = append(got, c.Text())
	}
	if diff := cmp.Diff([]string{"45", "Intersection: Oak Ave & Pine St"}, got); diff != "" {
		t.Fatalf("placeholder cells mismatch (-want +got):\n%s", diff)
	}

	xml := testsupport.ReadPart(t, fsys, result.OutputPath, "word/document.xml")
	for _, fragment := range []string{
		`<w:pPr><w:jc w:val="center"/></w:pPr>`,
		`<w:sz w:val="24"/>`,
		`<w:szCs w:val="24"/>`,
		`Oak Ave &amp; Pine St`,
	} {
		if !strings.Contains(xml, fragment) {
			t.Fatalf("output document.xml missing %s", fragment)
		}
	}
	if strings.Contains(xml, fields.LabelCRLocation) || strings.Contains(xml, fields.LabelILocation) {
		t.Fatalf("placeholder labels should be replaced")
	}
}

func TestFillWithoutCheckboxes(t *testing.T) {
	fsys := setup(t)
	req := request()
	req.MarkCheckboxes = false
	req.FilenameTemplate = mutator.FixedFilename

	result, err := orchestrator.New(orchestrator.WithFs(fsys)).Fill(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if result.OutputPath != "/out/Filled_Form.docx" {
		t.Fatalf("unexpected output path %q", result.OutputPath)
	}
	if result.Checkboxes.State != checkbox.StateUnopened {
		t.Fatalf("marker should not run, state %s", result.Checkboxes.State)
	}
}

func TestFillReportsCheckboxFailureButKeepsOutput(t *testing.T) {
	fsys := setup(t)
	launcher := checkbox.LauncherFunc(func(context.Context) (checkbox.Application, error) {
		return nil, errors.New("automation unavailable")
	})

	result, err := orchestrator.New(orchestrator.WithFs(fsys), orchestrator.WithLauncher(launcher)).Fill(testsupport.Context(), request())
	if err != nil {
		t.Fatalf("fill should succeed, got %v", err)
	}
	if result.CheckboxErr == nil {
		t.Fatalf("expected checkbox error")
	}
	if ok, _ := afero.Exists(fsys, result.OutputPath); !ok {
		t.Fatalf("output %s should exist", result.OutputPath)
	}
}

func TestFillDoesNotSaveOnSubstitutionError(t *testing.T) {
	fsys := setup(t)
	opener := document.OpenerFunc(func(context.Context, string) (document.Document, error) {
		return readOnlyDoc{}, nil
	})

	_, err := orchestrator.New(orchestrator.WithFs(fsys), orchestrator.WithOpener(opener)).Fill(testsupport.Context(), request())
	if err == nil {
		t.Fatalf("expected substitution error")
	}
	if ok, _ := afero.DirExists(fsys, "/out"); ok {
		t.Fatalf("nothing should be written on substitution failure")
	}
}

// readOnlyDoc has one labelled cell that ignores writes, so filling it fails.
type readOnlyDoc struct{}

func (readOnlyDoc) Tables() []document.Table           { return []document.Table{readOnlyTable{}} }
func (readOnlyDoc) Paragraphs() []document.Paragraph   { return nil }
func (readOnlyDoc) WriteTo(w io.Writer) (int64, error) { return 0, nil }

type readOnlyTable struct{}

func (readOnlyTable) Rows() []document.Row { return []document.Row{readOnlyRow{}} }

type readOnlyRow struct{}

func (readOnlyRow) Cells() []document.Cell { return []document.Cell{readOnlyCell{}} }

type readOnlyCell struct{}

func (readOnlyCell) Text() string                     { return fields.LabelDesignConsultant }
func (readOnlyCell) SetText(string)                   {}
func (readOnlyCell) Paragraphs() []document.Paragraph { return nil }
func (readOnlyCell) AddParagraph() document.Paragraph { return &testsupport.MemParagraph{} }

func TestFillErrors(t *testing.T) {
	fsys := setup(t)
	orch := orchestrator.New(orchestrator.WithFs(fsys))

	req := request()
	req.Columns.Row = 9
	if _, err := orch.Fill(testsupport.Context(), req); !errors.Is(err, source.ErrRowOutOfRange) {
		t.Fatalf("expected ErrRowOutOfRange, got %v", err)
	}

	req = request()
	req.SourcePath = "/in/ramps.ods"
	if _, err := orch.Fill(testsupport.Context(), req); !errors.Is(err, source.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}

	req = request()
	req.Profile = "missing"
	if _, err := orch.Fill(testsupport.Context(), req); err == nil {
		t.Fatalf("expected unknown profile error")
	}

	req = request()
	req.TemplatePath = ""
	if _, err := orch.Fill(testsupport.Context(), req); err == nil {
		t.Fatalf("expected missing template error")
	}
}

func TestCustomProfileFS(t *testing.T) {
	fsys := setup(t)
	profiles := fstest.MapFS{
		"p.yaml": {Data: []byte("profiles:\n  curb-ramp:\n    values:\n      design_consultant: ACME\n")},
	}

	result, err := orchestrator.New(orchestrator.WithFs(fsys), orchestrator.WithProfileFS(profiles)).Fill(testsupport.Context(), request())
	if err != nil {
		t.Fatalf("fill: %v", err)
	}
	if result.Checkboxes.State != checkbox.StateUnopened {
		t.Fatalf("profile without targets should not mark, state %s", result.Checkboxes.State)
	}
	doc, err := ooxml.NewOpener(fsys).Load(testsupport.Context(), result.OutputPath)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	if got := doc.Tables()[0].Rows()[0].Cells()[0].Text(); got != "Design Consultant: ACME" {
		t.Fatalf("unexpected consultant cell %q", got)
	}
}
