package records

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc"
)

// Sheets read from an .xlsx workbook. A workbook without the sheet is read
// from its first sheet.
const (
	TeacherSheet = "師資"
	CourseSheet  = "課程"
)

// ImportOptions control how spreadsheet rows become records.
type ImportOptions struct {
	// Region keeps only teachers whose region column equals it. Empty keeps
	// every row.
	Region string
	// Encoding of a .csv file: "utf-8" (default) or "big5".
	Encoding string
	// ImageDir is the directory image file names are resolved against.
	// Defaults to "images".
	ImageDir string
}

func (o ImportOptions) imagePath(category, name string) string {
	dir := o.ImageDir
	if dir == "" {
		dir = "images"
	}
	return filepath.Join(dir, category, path.Base(filepath.ToSlash(name)))
}

// column is a spreadsheet column mapped to a record key.
type column struct {
	index int
	key   string
}

var teacherColumns = []column{
	{0, "region"},
	{1, "name"},
	{2, "nickname"},
	{4, "unit"},
	{5, "birth"},
	{6, "gender"},
	{7, "tel"},
	{8, "mobile"},
	{9, "id"},
	{10, "address"},
	{11, "email"},
	{12, "line"},
	{13, "skill"},
	{14, "experience"},
	{15, "history"},
	{16, "education"},
	{17, "job"},
	{22, "course_type"},
}

var teacherImages = []column{
	{3, "photo"},
	{18, "id_front"},
	{19, "id_back"},
	{20, "diploma"},
}

const teacherCertsColumn = 21

var courseColumns = []column{
	{0, "course_name"},
	{1, "intro"},
	{2, "material_fee"},
	{3, "reason"},
	{4, "target"},
	{5, "content"},
	{7, "price_list_name"},
	{8, "price_list_unit"},
	{9, "price_list_quantity"},
	{10, "price_list_price"},
	{11, "price_list_amount"},
	{12, "price_list_usage"},
	{14, "course"},
}

const (
	coursePhotosColumn = 6
	courseBankColumn   = 13
)

func cellAt(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// TeacherRecord maps one row of the teacher sheet to a record. Image
// columns hold file names under <ImageDir>/teachers; other certificates
// are a comma separated list.
func TeacherRecord(row []string, opts ImportOptions) teacherdoc.Record {
	rec := teacherdoc.Record{}
	for _, c := range teacherColumns {
		rec[c.key] = cellAt(row, c.index)
	}
	for _, c := range teacherImages {
		rec[c.key] = ""
		if name := cellAt(row, c.index); name != "" {
			rec[c.key] = opts.imagePath(Teachers, name)
		}
	}
	rec["other_certs"] = imageList(cellAt(row, teacherCertsColumn), Teachers, opts)
	return rec
}

// CourseRecord maps one row of the course sheet to a record. Photos are a
// comma separated list of file names under <ImageDir>/courses.
func CourseRecord(row []string, opts ImportOptions) teacherdoc.Record {
	rec := teacherdoc.Record{}
	for _, c := range courseColumns {
		rec[c.key] = cellAt(row, c.index)
	}
	rec["photos"] = imageList(cellAt(row, coursePhotosColumn), Courses, opts)
	rec["bank_account"] = ""
	if name := cellAt(row, courseBankColumn); name != "" {
		rec["bank_account"] = opts.imagePath(Courses, name)
	}
	return rec
}

func imageList(cell, category string, opts ImportOptions) []string {
	out := []string{}
	for _, name := range strings.Split(cell, ",") {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, opts.imagePath(category, name))
		}
	}
	return out
}

// ImportTeachers replaces the content of store with the teacher rows of
// the spreadsheet at file. The header row is skipped, rows outside
// opts.Region and rows without a name are dropped. It returns the number of
// records stored.
func ImportTeachers(ctx context.Context, store Store, file string, opts ImportOptions) (int, error) {
	rows, err := ReadRows(file, TeacherSheet, opts.Encoding)
	if err != nil {
		return 0, err
	}
	var recs []teacherdoc.Record
	for _, row := range skipHeader(rows) {
		if opts.Region != "" && cellAt(row, 0) != opts.Region {
			continue
		}
		if cellAt(row, 1) == "" {
			teacherdoc.Debug("skipping teacher row without a name")
			continue
		}
		recs = append(recs, TeacherRecord(row, opts))
	}
	return replace(ctx, store, recs)
}

// ImportCourses replaces the content of store with the course rows of the
// spreadsheet at file. The header row and blank rows are skipped.
func ImportCourses(ctx context.Context, store Store, file string, opts ImportOptions) (int, error) {
	rows, err := ReadRows(file, CourseSheet, opts.Encoding)
	if err != nil {
		return 0, err
	}
	var recs []teacherdoc.Record
	for _, row := range skipHeader(rows) {
		if blank(row) {
			continue
		}
		recs = append(recs, CourseRecord(row, opts))
	}
	return replace(ctx, store, recs)
}

func skipHeader(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	return rows[1:]
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func replace(ctx context.Context, store Store, recs []teacherdoc.Record) (int, error) {
	if err := store.Reset(ctx); err != nil {
		return 0, err
	}
	for i, rec := range recs {
		if _, err := store.Add(ctx, rec); err != nil {
			return i, err
		}
	}
	return len(recs), nil
}

// ReadRows returns the rows of an .xlsx sheet or of a .csv file.
func ReadRows(file, sheet, encoding string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".xlsx", ".xlsm":
		return readSheet(file, sheet)
	case ".csv":
		return readCSV(file, encoding)
	}
	return nil, fmt.Errorf("unsupported spreadsheet %s: want .xlsx or .csv", filepath.Base(file))
}

func readSheet(file, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s has no sheets", file)
	}
	if !slices.Contains(sheets, sheet) {
		teacherdoc.Debug("sheet %s not found in %s, reading %s", sheet, filepath.Base(file), sheets[0])
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	return rows, nil
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(file, encoding string) ([][]string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}

	var r io.Reader
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		r = bytes.NewReader(bytes.TrimPrefix(data, utf8BOM))
	case "big5":
		r = transform.NewReader(bytes.NewReader(data), traditionalchinese.Big5.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return rows, nil
}
