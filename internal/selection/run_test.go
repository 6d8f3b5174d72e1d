package selection

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/aria-lang/phyloprep-go/internal/config"
	"github.com/aria-lang/phyloprep-go/internal/msa"
)

func writeInputs(t *testing.T) (table, alignment string) {
	t.Helper()
	dir := t.TempDir()
	table = filepath.Join(dir, "meta.csv")
	alignment = filepath.Join(dir, "aln.fas")
	require.NoError(t, os.WriteFile(table, []byte(testTable), 0o644))
	require.NoError(t, os.WriteFile(alignment, []byte(testAlignment), 0o644))
	return table, alignment
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRun(t *testing.T) {
	table, alignment := writeInputs(t)
	outDir := filepath.Join(t.TempDir(), "out")

	crit, err := Build(config.Selection{Fields: []config.Field{{Name: "country", Value: "Guinea"}}}, ",")
	require.NoError(t, err)

	res, err := Run(context.Background(), Job{
		Table:     table,
		Alignment: alignment,
		OutDir:    outDir,
		Prefix:    "guinea",
		UpdateIDs: true,
		Criteria:  crit,
		Logger:    zaptest.NewLogger(t),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Evaluated)
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, 2, res.Extracted)
	assert.Equal(t, 0, res.MissingFromAlignment)
	assert.Equal(t, []ReasonCount{{Reason: "country", Count: 2}}, res.ReasonCounts())
	assert.Len(t, res.Files, 3)

	lines := strings.Split(testTable, "\n")
	assert.Equal(t, lines[0]+"\n"+lines[2]+"\n"+lines[4]+"\n", readFile(t, filepath.Join(outDir, "guinea.csv")))
	assert.Equal(t, lines[0]+"\n"+lines[1]+"\n"+lines[3]+"\n", readFile(t, filepath.Join(outDir, "guinea.skipped.csv")))

	aln, err := msa.ReadFile(filepath.Join(outDir, "guinea.fas"))
	require.NoError(t, err)
	require.Equal(t, 2, aln.Len())
	assert.Equal(t, "EBOV|S2|KR002|Guinea|Conakry|2014-06-10", aln.Records[0].ID)
	assert.Equal(t, "", aln.Records[0].Desc)
	assert.Equal(t, "ACGT------", aln.Records[0].Seq)
	assert.Equal(t, "EBOV|S4|KR004|Guinea|Gueckedou|2015-01-03", aln.Records[1].ID)
}

func TestRunMSAOnly(t *testing.T) {
	table, alignment := writeInputs(t)
	outDir := t.TempDir()

	crit, err := Build(config.Selection{Include: "S3,S1"}, ",")
	require.NoError(t, err)

	res, err := Run(context.Background(), Job{
		Table:     table,
		Alignment: alignment,
		OutDir:    outDir,
		MSAOnly:   true,
		Criteria:  crit,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 1, res.Extracted)
	assert.Equal(t, 1, res.MissingFromAlignment)
	assert.Equal(t, []string{filepath.Join(outDir, "meta.fas")}, res.Files)

	_, err = os.Stat(filepath.Join(outDir, "meta.csv"))
	assert.True(t, os.IsNotExist(err))

	aln, err := msa.ReadFile(filepath.Join(outDir, "meta.fas"))
	require.NoError(t, err)
	require.Equal(t, 1, aln.Len())
	assert.Equal(t, "EBOV|S1|KR001|SLE|2014-05-26", aln.Records[0].ID)
	assert.Equal(t, "old", aln.Records[0].Desc, "ids are kept unless rewriting")
}

func TestRunWithoutAlignment(t *testing.T) {
	table, _ := writeInputs(t)
	outDir := t.TempDir()

	res, err := Run(context.Background(), Job{Table: table, OutDir: outDir, Criteria: &Criteria{Exclude: []string{"S4"}}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Matched)
	assert.Equal(t, 0, res.Extracted)

	_, err = os.Stat(filepath.Join(outDir, "meta.fas"))
	assert.True(t, os.IsNotExist(err), "no alignment written without sequences")

	_, err = Run(context.Background(), Job{Table: table, OutDir: outDir, Criteria: &Criteria{MinLength: 10}})
	assert.ErrorIs(t, err, ErrNoAlignment)
}

func TestRunBadIDFormat(t *testing.T) {
	table, alignment := writeInputs(t)

	_, err := Run(context.Background(), Job{
		Table:     table,
		Alignment: alignment,
		OutDir:    t.TempDir(),
		UpdateIDs: true,
		IDFormat:  "{id}|{lineage}",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lineage")
}

func TestRunCancelled(t *testing.T) {
	table, _ := writeInputs(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Job{Table: table, OutDir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
}
