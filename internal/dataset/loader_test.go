package dataset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "train.csv",
		"tBodyAcc-mean()-X,tBodyAcc-mean()-Y,subject,Activity\n"+
			"0.28,-0.02,1,STANDING\n"+
			"0.27,-0.01,1,WALKING\n"+
			"0.29,-0.03,2,STANDING\n")

	tbl, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "train.csv", tbl.Name)
	assert.Equal(t, []string{"tBodyAcc-mean()-X", "tBodyAcc-mean()-Y", "subject"}, tbl.Features)
	assert.Equal(t, []string{"STANDING", "WALKING", "STANDING"}, tbl.Labels)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, 3, tbl.NumFeatures())
	assert.InDelta(t, -0.01, tbl.Rows[1][1], 1e-12)
	assert.Equal(t, []float64{1, 1, 2}, tbl.Column(2))
	assert.Equal(t, []string{"STANDING", "WALKING"}, tbl.Classes())
	assert.Equal(t, 1, tbl.FeatureIndex("tBodyAcc-mean()-Y"))
	assert.Equal(t, -1, tbl.FeatureIndex("Activity"))
}

func TestLoadTSVByExtension(t *testing.T) {
	p := writeFile(t, "train.tsv", "a\tb\tActivity\n1\t2\tX\n3\t5\tY\n")
	tbl, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Features)
	assert.Equal(t, []float64{2, 5}, tbl.Column(1))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), DefaultOptions())
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadMissingLabel(t *testing.T) {
	p := writeFile(t, "nolabel.csv", "a,b\n1,2\n3,4\n")
	_, err := Load(p, DefaultOptions())
	var me *MissingColumnError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Activity", me.Column)
	assert.Equal(t, []string{"a", "b"}, me.Available)
}

func TestLoadNonNumericFeature(t *testing.T) {
	p := writeFile(t, "text.csv", "a,note,Activity\n1,hello,X\n2,world,Y\n")
	_, err := Load(p, DefaultOptions())
	var ne *NonNumericError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "note", ne.Column)
}

func TestLoadMissingNumericCell(t *testing.T) {
	p := writeFile(t, "gap.csv", "a,b,Activity\n1,NaN,X\n2,3,Y\n4,5,X\n")
	_, err := Load(p, DefaultOptions())
	var ne *NonNumericError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "b", ne.Column)
}

func TestLoadInfiniteCell(t *testing.T) {
	for _, cell := range []string{"Inf", "-Inf"} {
		p := writeFile(t, "inf.csv", "a,b,Activity\n1,"+cell+",X\n2,3,Y\n4,5,X\n")
		_, err := Load(p, DefaultOptions())
		var ne *NonNumericError
		require.ErrorAs(t, err, &ne, cell)
		assert.Equal(t, "b", ne.Column)
		assert.Equal(t, "non-finite values", ne.Kind)
	}
}

func TestLoadBlankLabel(t *testing.T) {
	p := writeFile(t, "nolabel.csv", "a,b,Activity\n1,2,\n2,3,Y\n4,5,X\n")
	_, err := Load(p, DefaultOptions())
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, ErrBlankLabel)
	assert.Contains(t, err.Error(), "row 2")
}

func TestLoadMalformedCSV(t *testing.T) {
	p := writeFile(t, "ragged.csv", "a,b,Activity\n1,2,X\n3,Y\n")
	_, err := Load(p, DefaultOptions())
	var le *LoadError
	assert.ErrorAs(t, err, &le)
}

func TestLoadTooFewRows(t *testing.T) {
	p := writeFile(t, "one.csv", "a,b,Activity\n1,2,X\n")
	_, err := Load(p, DefaultOptions())
	assert.ErrorIs(t, err, ErrTooFewRows)
}

func TestLoadNoFeatures(t *testing.T) {
	p := writeFile(t, "labels.csv", "Activity\nX\nY\n")
	_, err := Load(p, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoFeatures)
}

func TestLoadCustomLabel(t *testing.T) {
	p := writeFile(t, "custom.csv", "class,a,b\nk1,1,2\nk2,3,4\n")
	tbl, err := Load(p, Options{LabelColumn: "class"})
	require.NoError(t, err)
	assert.Equal(t, "class", tbl.Label)
	assert.Equal(t, []string{"a", "b"}, tbl.Features)
}

func TestLoadXLSX(t *testing.T) {
	p := filepath.Join(t.TempDir(), "train.xlsx")
	wb := excelize.NewFile()
	require.NoError(t, wb.SetSheetRow("Sheet1", "A1", &[]interface{}{"a", "b", "Activity"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A2", &[]interface{}{1.5, 2, "SITTING"}))
	require.NoError(t, wb.SetSheetRow("Sheet1", "A3", &[]interface{}{2.5, 4, "LAYING"}))
	require.NoError(t, wb.SaveAs(p))
	require.NoError(t, wb.Close())

	tbl, err := Load(p, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Features)
	assert.Equal(t, []string{"SITTING", "LAYING"}, tbl.Labels)
	assert.InDelta(t, 2.5, tbl.Rows[1][0], 1e-12)

	_, err = Load(p, Options{LabelColumn: "Activity", SheetIndex: 4})
	var le *LoadError
	assert.ErrorAs(t, err, &le)
}
