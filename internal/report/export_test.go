package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	companies, licenses := fixtures()
	rows := Project(companies, licenses, nil, today)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, got, len(rows)+1)
	assert.Equal(t, "Empresa", got[0][0])
	assert.Equal(t, "Observações", got[0][9])
	assert.Equal(t, "Padaria Pão Quente", got[2][0])
	assert.Equal(t, "15/06/2024", got[2][5])
	assert.Equal(t, "A Vencer", got[2][6])
	assert.Equal(t, "renovação em andamento", got[2][9])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWritePDF(t *testing.T) {
	companies, licenses := fixtures()
	rows := Project(companies, licenses, nil, today)
	for i := 0; i < 6; i++ {
		rows = append(rows, rows...)
	}

	var buf bytes.Buffer
	err := WritePDF(&buf, rows, Meta{Firm: "C & E CONTABILIDADE", Title: "Relatório Geral", GeneratedAt: today})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}
