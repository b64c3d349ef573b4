package molfile_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/autocorr/gadex/molfile"
)

const sampleData = `!MOLECULE
HCO+
!MOLECULAR WEIGHT
29.0
!NUMBER OF ENERGY LEVELS
4
!LEVEL + ENERGIES(cm^-1) + WEIGHT + J
   1    0.000000000   1.0   0
   2    2.975012777   3.0   1
   3    8.925019380   5.0   2
   4   17.849868240   7.0   3
!NUMBER OF RADIATIVE TRANSITIONS
3
!TRANS + UP + LOW + EINSTEINA(s^-1) + FREQ(GHz) + E_u(K)
    1     2     1   4.251e-05     89.1885247     4.28
    2     3     2   4.080e-04    178.3750563    12.84
    3     4     3   1.476e-03    267.5576259    25.68
!NUMBER OF COLL PARTNERS
1
!COLLISIONS BETWEEN
1 HCO+ - H2 from Flower (1999)
!NUMBER OF COLL TRANS
6
!NUMBER OF COLL TEMPS
2
!COLL TEMPS
   10.0   20.0
!COLL TRANS + UP + LOW + COLLRATES(cm^3 s^-1)
    1     2     1  2.6e-10  2.3e-10
    2     3     1  1.4e-10  1.3e-10
    3     3     2  2.8e-10  2.6e-10
    4     4     1  9.6e-11  9.7e-11
    5     4     2  1.7e-10  1.6e-10
    6     4     3  3.0e-10  2.8e-10
`

func TestRead(t *testing.T) {
	mol, err := molfile.Read(strings.NewReader(sampleData))
	require.NoError(t, err)

	require.Equal(t, "HCO+", mol.Name)
	require.Equal(t, 29.0, mol.Weight)
	require.Equal(t, 4, mol.NLevels())
	require.Equal(t, 3, mol.NLines())

	require.Equal(t, 0.0, mol.Levels[0].Energy)
	require.Equal(t, 3.0, mol.Levels[1].Weight)
	require.Equal(t, "2", mol.Levels[2].Label)

	// Indices are converted to zero-based, the transition energy derives
	// from the level energies.
	line := mol.Lines[1]
	require.Equal(t, 2, line.Upper)
	require.Equal(t, 1, line.Lower)
	require.Equal(t, 4.080e-04, line.Aul)
	require.InDelta(t, 8.925019380-2.975012777, line.Xnu, 1e-12)

	require.Len(t, mol.Partners, 1)
	part := mol.Partners[0]
	require.Equal(t, "H2", part.Name)
	require.Equal(t, []float64{10.0, 20.0}, part.Temps)
	require.Len(t, part.Rates, 6)
	require.Equal(t, 2, part.Upper[2])
	require.Equal(t, 1, part.Lower[2])
	require.Equal(t, []float64{2.8e-10, 2.6e-10}, part.Rates[2])
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hco+.dat")
	require.NoError(t, os.WriteFile(path, []byte(sampleData), 0o644))

	mol, err := molfile.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "HCO+", mol.Name)

	_, err = molfile.ReadFile(filepath.Join(t.TempDir(), "missing.dat"))
	require.Error(t, err)
}

func TestRead_Errors(t *testing.T) {
	cases := []struct {
		name   string
		mangle func(string) string
	}{
		{"truncated", func(s string) string {
			return s[:strings.Index(s, "!NUMBER OF COLL TRANS")]
		}},
		{"bad weight", func(s string) string {
			return strings.Replace(s, "29.0", "heavy", 1)
		}},
		{"bad partner code", func(s string) string {
			return strings.Replace(s, "1 HCO+ - H2", "9 HCO+ - X", 1)
		}},
		{"level out of range", func(s string) string {
			return strings.Replace(s, "    3     4     3   1.476e-03", "    3     9     3   1.476e-03", 1)
		}},
		{"temperature count mismatch", func(s string) string {
			return strings.Replace(s, "   10.0   20.0", "   10.0", 1)
		}},
		{"missing rate column", func(s string) string {
			return strings.Replace(s, "    6     4     3  3.0e-10  2.8e-10", "    6     4     3  3.0e-10", 1)
		}},
		{"empty", func(string) string { return "" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := molfile.Read(strings.NewReader(tc.mangle(sampleData)))
			require.ErrorIs(t, err, molfile.ErrSyntax)
		})
	}
}
