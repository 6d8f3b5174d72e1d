package metadata

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTable = `sample_id,accession,date,country,location,virus
S1,KR001,2014-05-26,Sierra Leone,Kailahun,EBOV
S2,KR002,2014-06,Guinea,Conakry,EBOV

S3,KR003,NA,Liberia,NA,EBOV
`

func TestReaderRows(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleTable), ",", nil)
	require.NoError(t, err)

	table := r.Table()
	assert.Equal(t, 0, table.Columns[FieldID])
	assert.Equal(t, 4, table.Columns[FieldProvince])
	assert.False(t, table.Has("platform"))
	assert.Equal(t, []string{"accession", "country", "date", "id", "province", "virus"}, table.Fields())

	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "blank lines are skipped")

	assert.Equal(t, "S1", rows[0].ID())
	assert.Equal(t, "Kailahun", rows[0].Field(FieldProvince))
	assert.Equal(t, "", rows[0].Field("platform"))
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 5, rows[2].Line)
	assert.Equal(t, Missing, rows[2].Field(FieldDate))
	assert.Equal(t, "S3,KR003,NA,Liberia,NA,EBOV", rows[2].String())

	values := rows[1].Values()
	assert.Equal(t, "Guinea", values[FieldCountry])
	assert.Equal(t, "2014-06", values[FieldDate])
}

func TestReaderShortRow(t *testing.T) {
	r, err := NewReader(strings.NewReader("sample_id\tdate\tcountry\nS1\t2014-01-01\n"), "\t", nil)
	require.NoError(t, err)

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "", row.Field(FieldCountry))

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderTrimsLines(t *testing.T) {
	r, err := NewReader(strings.NewReader("sample_id,country\t\r\n  S1,Guinea \t\r\n"), ",", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"sample_id", "country"}, r.Table().Header)

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "S1", row.ID())
	assert.Equal(t, "Guinea", row.Field(FieldCountry))
	assert.Equal(t, "S1,Guinea", row.String())
}

func TestReaderCustomMapping(t *testing.T) {
	mapping := FieldMapping{FieldID: {"strain", "name"}, FieldDate: {"collection_date"}}
	r, err := NewReader(strings.NewReader(" name ,collection_date\nA,2015\n"), ",", mapping)
	require.NoError(t, err)

	row, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "A", row.ID())
	assert.Equal(t, "2015", row.Field(FieldDate))
}

func TestReaderErrors(t *testing.T) {
	_, err := NewReader(strings.NewReader("accession,date\nK1,2014\n"), ",", nil)
	assert.ErrorIs(t, err, ErrNoIDColumn)

	_, err = NewReader(strings.NewReader(""), ",", nil)
	require.Error(t, err)

	_, err = NewReader(strings.NewReader("sample_id\n"), "", nil)
	require.Error(t, err)
}

func TestReadIDs(t *testing.T) {
	ids, err := ReadIDs(strings.NewReader("S1,extra\nS2\n\n  S3 ,x\n"), ",")
	require.NoError(t, err)
	assert.Equal(t, []string{"S1", "S2", "S3 "}, ids)
}

func TestWriterRoundTrip(t *testing.T) {
	r, err := NewReader(strings.NewReader(sampleTable), ",", nil)
	require.NoError(t, err)
	rows, err := r.ReadAll()
	require.NoError(t, err)

	var buf bytes.Buffer
	w := NewWriter(&buf, ",")
	require.NoError(t, w.WriteCells(r.Table().Header))
	for _, row := range rows {
		require.NoError(t, w.WriteRow(row))
	}
	require.NoError(t, w.Flush())

	want := strings.Replace(sampleTable, "\n\n", "\n", 1)
	assert.Equal(t, want, buf.String())
}
