// Package teacherdoc fills word-processing templates (.docx and .odt) with
// teacher and course records.
//
// Basic Usage:
//
//	rec := teacherdoc.Merge(teacher, course)
//	res, err := teacherdoc.New().Generate("templates/application.docx", rec)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, w := range res.Warnings {
//	    log.Println(w)
//	}
//	fmt.Println("written to", res.Path)
//
// Template Markers:
//
// Any "@key" in a paragraph or table cell is replaced by the record value
// for key, where key is a record key or a catalogue key (see Catalog).
// Catalogue keys missing from the record become empty text; other text
// after an "@", such as an email address, is left alone. The keys photo, id_front,
// id_back, diploma and bank_account hold an image path, and other_certs and
// photos hold lists of image paths; their markers are replaced by the
// embedded images.
//
// Four markers grow tables instead: @content and @course_topic write one
// line per row, @price_list_table writes the six price list fields on six
// rows, and @weekly_photos places photos named "<name>_<week>" on the row of
// their week. Rows are written downward from the marker cell, in its column.
//
// Replacing text in a paragraph or cell rewrites it as a single plain run,
// so character formatting inside a substituted container is lost.
package teacherdoc
