package service_test

import (
	"fmt"
	"testing"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAllowedExtension(t *testing.T) {
	tests := []struct {
		fileName string
		want     bool
	}{
		{"contacts.csv", true},
		{"contacts.xlsx", true},
		{"contacts.xls", true},
		{"CONTACTS.CSV", true},
		{"Contacts.XlSx", true},
		{"contacts.txt", false},
		{"contacts.pdf", false},
		{"contacts", false},
		{"contacts.csv.exe", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, service.AllowedExtension(tt.fileName), tt.fileName)
	}
}

func TestParseItems_CSV(t *testing.T) {
	data := []byte("FirstName,Phone,Notes\n" +
		"John,+14155550101,Call after 6pm\n" +
		"Jane,+14155550102,\n" +
		"Bob,+14155550103,Prefers email\n")

	items, err := service.ParseItems("contacts.csv", data)
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "John", items[0].FirstName)
	assert.Equal(t, "+14155550101", items[0].Phone)
	assert.Equal(t, "Call after 6pm", items[0].Notes)
	assert.Equal(t, "", items[1].Notes)
}

func TestParseItems_CSVHeaderAliases(t *testing.T) {
	data := []byte("first_name,Mobile,Note\nJohn,+14155550101,hi\n")

	items, err := service.ParseItems("contacts.csv", data)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "John", items[0].FirstName)
	assert.Equal(t, "+14155550101", items[0].Phone)
	assert.Equal(t, "hi", items[0].Notes)
}

func TestParseItems_SkipsIncompleteRows(t *testing.T) {
	data := []byte("FirstName,Phone,Notes\n" +
		"John,+14155550101,ok\n" +
		",,\n" +
		"NoPhone,,\n" +
		",+14155550104,no name\n" +
		"Jane,+14155550105,ok\n")

	items, err := service.ParseItems("contacts.csv", data)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "John", items[0].FirstName)
	assert.Equal(t, "Jane", items[1].FirstName)
}

func TestParseItems_Errors(t *testing.T) {
	_, err := service.ParseItems("contacts.txt", []byte("whatever"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedExt)

	_, err = service.ParseItems("contacts.csv", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	// Header only, no data rows.
	_, err = service.ParseItems("contacts.csv", []byte("FirstName,Phone,Notes\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	// Missing required columns.
	_, err = service.ParseItems("contacts.csv", []byte("Foo,Bar\n1,2\n"))
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	// Workbook extension with garbage content.
	_, err = service.ParseItems("contacts.xlsx", []byte("not a workbook"))
	assert.Error(t, err)
}

func TestParseItems_XLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"FirstName", "Phone", "Notes"}))
	for i := 0; i < 4; i++ {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{fmt.Sprintf("Contact%d", i), fmt.Sprintf("+1415555%04d", i), "note"}
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	items, err := service.ParseItems("contacts.xlsx", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, "Contact0", items[0].FirstName)
	assert.Equal(t, "+14155550003", items[3].Phone)
}
