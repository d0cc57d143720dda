// Package importer registers word identifiers read from a column of an .xlsx
// workbook or a .csv file.
package importer
