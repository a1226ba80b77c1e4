package mrio_test

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/chokepoint/iotable"
	"github.com/katalvlaran/chokepoint/matrix"
	"github.com/katalvlaran/chokepoint/mrio"
)

// economy lays out Z and F as a raw table with one net-tax row and one
// value-added row. Total output is Z·1 + F·1; value added closes each column,
// of which taxShare goes to the tax row.
func economy(countries, industries []string, finalUse int, z, f [][]float64, taxShare float64) (iotable.Raw, iotable.Dims) {
	n := len(countries) * len(industries)
	var sectors []string
	for _, c := range countries {
		for _, ind := range industries {
			sectors = append(sectors, c+"_"+ind)
		}
	}
	var fuLabels []string
	for _, c := range countries {
		for k := 0; k < finalUse; k++ {
			fuLabels = append(fuLabels, fmt.Sprintf("%s_F%d", c, k))
		}
	}
	cols := len(fuLabels) + n + 1

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			x[i] += z[i][j]
		}
		for j := range f[i] {
			x[i] += f[i][j]
		}
	}

	var values [][]float64
	for i := 0; i < n; i++ {
		row := make([]float64, 0, cols)
		row = append(row, z[i]...)
		row = append(row, f[i]...)
		row = append(row, x[i])
		values = append(values, row)
	}
	tax := make([]float64, cols)
	va := make([]float64, cols)
	out := make([]float64, cols)
	for j := 0; j < n; j++ {
		var colZ float64
		for i := 0; i < n; i++ {
			colZ += z[i][j]
		}
		rest := x[j] - colZ
		tax[j] = rest * taxShare
		va[j] = rest - tax[j]
		out[j] = x[j]
	}
	values = append(values, tax, va, out)

	raw := iotable.Raw{
		RowLabels: append(append([]string{}, sectors...), "TLS", "VA", "OUT"),
		ColLabels: append(append(append([]string{}, sectors...), fuLabels...), "OUT"),
		Values:    values,
	}
	dims := iotable.Dims{
		Countries:  len(countries),
		Industries: len(industries),
		FinalUse:   finalUse,
		ValueAdded: 2,
		TaxRows:    1,
	}

	return raw, dims
}

func build(t *testing.T, raw iotable.Raw, dims iotable.Dims, opts ...mrio.Option) *mrio.Matrices {
	t.Helper()
	tbl, err := iotable.Parse(raw, dims)
	require.NoError(t, err)
	m, err := mrio.Build(tbl, opts...)
	require.NoError(t, err)

	return m
}

func at(t *testing.T, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)

	return v
}

func TestSingleSectorEconomy(t *testing.T) {
	raw, dims := economy([]string{"AAA"}, []string{"X"}, 1,
		[][]float64{{0}}, [][]float64{{10}}, 0.2)
	m := build(t, raw, dims)

	require.Equal(t, []float64{10}, m.X)
	require.Equal(t, 0.0, at(t, m.A, 0, 0))
	require.Equal(t, 1.0, at(t, m.L, 0, 0))
	require.InDelta(t, 8.0, at(t, m.W, 0, 0), 1e-12)
	require.InDelta(t, 0.8, at(t, m.V, 0, 0), 1e-12)
	require.NoError(t, mrio.Validate(m, 1e-9))

	vc, err := mrio.ValueChain(m)
	require.NoError(t, err)
	require.Equal(t, []string{"AAA"}, vc.Countries)
	// L = I, so the value chain is V·X.
	require.InDelta(t, 8.0, at(t, vc.Values, 0, 0), 1e-12)
}

func TestTwoSectorLeontief(t *testing.T) {
	raw, dims := economy([]string{"AAA"}, []string{"X", "Y"}, 1,
		[][]float64{{0, 2}, {2, 0}}, [][]float64{{8}, {8}}, 0)
	m := build(t, raw, dims)

	// I − A = [[1,-.2],[-.2,1]], inverse = [[1,.2],[.2,1]] / 0.96.
	require.InDelta(t, 1/0.96, at(t, m.L, 0, 0), 1e-12)
	require.InDelta(t, 0.2/0.96, at(t, m.L, 0, 1), 1e-12)
	require.NoError(t, mrio.Validate(m, 1e-9))
}

func TestValueChainByCountry(t *testing.T) {
	raw, dims := economy([]string{"BBB", "AAA"}, []string{"X"}, 1,
		[][]float64{{1, 2}, {3, 1}},
		[][]float64{{4, 3}, {2, 6}}, 0.1)
	m := build(t, raw, dims)
	require.NoError(t, mrio.Validate(m, 1e-9))

	vc, err := mrio.ValueChain(m)
	require.NoError(t, err)
	require.Equal(t, []string{"AAA", "BBB"}, vc.Countries)

	// Total value chain equals total value added (net of taxes).
	var total, wTotal float64
	vc.Values.Do(func(_, _ int, v float64) bool { total += v; return true })
	m.W.Do(func(_, _ int, v float64) bool { wTotal += v; return true })
	require.InDelta(t, wTotal, total, 1e-9)

	v, err := vc.At("BBB", "AAA")
	require.NoError(t, err)
	require.Greater(t, v, 0.0)
	_, err = vc.At("ZZZ", "AAA")
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestValueChain_SectorColumnOrder(t *testing.T) {
	raw, dims := economy([]string{"AAA", "BBB"}, []string{"X"}, 1,
		[][]float64{{2, 3}, {1, 2}},
		[][]float64{{4, 1}, {1, 6}}, 0)
	aligned, err := mrio.ValueChain(build(t, raw, dims))
	require.NoError(t, err)

	n := dims.Sectors()
	reversed := raw
	reversed.ColLabels = append([]string{}, raw.ColLabels...)
	reversed.Values = make([][]float64, len(raw.Values))
	for i, row := range raw.Values {
		moved := append([]float64{}, row...)
		for j := 0; j < n; j++ {
			moved[j] = row[n-1-j]
		}
		reversed.Values[i] = moved
	}
	for j := 0; j < n; j++ {
		reversed.ColLabels[j] = raw.ColLabels[n-1-j]
	}
	m := build(t, reversed, dims)
	require.NoError(t, mrio.Validate(m, 1e-9))
	got, err := mrio.ValueChain(m)
	require.NoError(t, err)

	for _, from := range aligned.Countries {
		for _, to := range aligned.Countries {
			want, err := aligned.At(from, to)
			require.NoError(t, err)
			v, err := got.At(from, to)
			require.NoError(t, err)
			require.InDelta(t, want, v, 1e-12, "%s->%s", from, to)
		}
	}
	ab, err := got.At("AAA", "BBB")
	require.NoError(t, err)
	require.Greater(t, ab, 0.0)
}

func TestBuild_Consistency(t *testing.T) {
	raw, dims := economy([]string{"AAA"}, []string{"X"}, 1,
		[][]float64{{1}}, [][]float64{{9}}, 0)
	raw.Values[0][2] = 10.5

	tbl, err := iotable.Parse(raw, dims)
	require.NoError(t, err)
	_, err = mrio.Build(tbl)
	require.ErrorIs(t, err, mrio.ErrConsistency)

	_, err = mrio.Build(tbl, mrio.WithConsistencyTolerance(1))
	require.NoError(t, err)
}

func TestBuild_Singular(t *testing.T) {
	raw, dims := economy([]string{"AAA"}, []string{"X", "Y"}, 1,
		[][]float64{{0, 10}, {10, 0}}, [][]float64{{0}, {0}}, 0)
	tbl, err := iotable.Parse(raw, dims)
	require.NoError(t, err)

	_, err = mrio.Build(tbl)
	require.ErrorIs(t, err, mrio.ErrSingular)
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestBuild_ZeroOutputSector(t *testing.T) {
	raw, dims := economy([]string{"AAA"}, []string{"X", "Y"}, 1,
		[][]float64{{1, 0}, {0, 0}}, [][]float64{{4}, {0}}, 0)
	m := build(t, raw, dims)

	require.Equal(t, 0.0, at(t, m.A, 0, 1))
	require.Equal(t, 0.0, at(t, m.V, 1, 0))
	require.NoError(t, mrio.Validate(m, 1e-9))
}

func TestValidate_NamesIdentity(t *testing.T) {
	raw, dims := economy([]string{"AAA", "BBB"}, []string{"X"}, 1,
		[][]float64{{1, 2}, {3, 1}}, [][]float64{{4, 3}, {2, 6}}, 0)

	cases := []struct {
		identity string
		tamper   func(t *testing.T, m *mrio.Matrices)
	}{
		{mrio.IdentityRowBalance, func(t *testing.T, m *mrio.Matrices) { require.NoError(t, m.F.Set(1, 0, 100)) }},
		{mrio.IdentityCoefficients, func(t *testing.T, m *mrio.Matrices) { require.NoError(t, m.A.Set(0, 0, 5)) }},
		{mrio.IdentityLeontief, func(t *testing.T, m *mrio.Matrices) { require.NoError(t, m.L.Set(1, 1, 5)) }},
		{mrio.IdentityValueAdded, func(t *testing.T, m *mrio.Matrices) { require.NoError(t, m.W.Set(0, 0, 50)) }},
	}
	for _, tc := range cases {
		t.Run(tc.identity, func(t *testing.T) {
			m := build(t, raw, dims)
			tc.tamper(t, m)

			err := mrio.Validate(m, 1e-6)
			require.ErrorIs(t, err, mrio.ErrValidation)
			var ve *mrio.ValidationError
			require.True(t, errors.As(err, &ve))
			require.Equal(t, tc.identity, ve.Identity)
			require.Contains(t, err.Error(), tc.identity)
			require.GreaterOrEqual(t, ve.Worst, math.Abs(ve.Diff))
			require.GreaterOrEqual(t, ve.WorstIndex, 0)
		})
	}
}

func TestValidate_ReportsWorstSector(t *testing.T) {
	raw, dims := economy([]string{"AAA", "BBB", "CCC"}, []string{"X"}, 1,
		[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		[][]float64{{5, 0, 0}, {0, 5, 0}, {0, 0, 5}}, 0)
	m := build(t, raw, dims)
	require.NoError(t, m.F.Set(0, 1, 1))
	require.NoError(t, m.F.Set(2, 2, 9))

	var ve *mrio.ValidationError
	require.True(t, errors.As(mrio.Validate(m, 1e-6), &ve))
	require.Equal(t, mrio.IdentityRowBalance, ve.Identity)
	require.Equal(t, 0, ve.Index)
	require.InDelta(t, 1.0, ve.Diff, 1e-12)
	require.Equal(t, 2, ve.WorstIndex)
	require.InDelta(t, 4.0, ve.Worst, 1e-12)
}

func TestValidate_BadTolerance(t *testing.T) {
	raw, dims := economy([]string{"AAA"}, []string{"X"}, 1, [][]float64{{0}}, [][]float64{{1}}, 0)
	m := build(t, raw, dims)
	require.ErrorIs(t, mrio.Validate(m, 0), mrio.ErrBadTolerance)
	require.ErrorIs(t, mrio.Validate(m, math.NaN()), mrio.ErrBadTolerance)
}

// randomEconomy draws Z in [0,1) and F in [n, 2n), which keeps every column's
// value added non-negative.
func randomEconomy(seed int64) (iotable.Raw, iotable.Dims) {
	rng := rand.New(rand.NewSource(seed))
	countries := []string{"AAA", "BBB", "CCC"}[:1+rng.Intn(3)]
	industries := []string{"P", "Q"}[:1+rng.Intn(2)]
	finalUse := 1 + rng.Intn(2)
	n := len(countries) * len(industries)
	fCols := len(countries) * finalUse

	z := make([][]float64, n)
	f := make([][]float64, n)
	for i := 0; i < n; i++ {
		z[i] = make([]float64, n)
		for j := range z[i] {
			z[i][j] = rng.Float64()
		}
		f[i] = make([]float64, fCols)
		for j := range f[i] {
			f[i][j] = float64(n) * (1 + rng.Float64())
		}
	}

	return economy(countries, industries, finalUse, z, f, rng.Float64()/2)
}

func TestIdentitiesHoldForRandomEconomies(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("all four identities hold", prop.ForAll(
		func(seed int64) bool {
			raw, dims := randomEconomy(seed)
			tbl, err := iotable.Parse(raw, dims)
			if err != nil {
				return false
			}
			m, err := mrio.Build(tbl, mrio.WithConsistencyTolerance(0))
			if err != nil {
				return false
			}

			return mrio.Validate(m, 1e-6) == nil
		},
		gen.Int64(),
	))

	properties.Property("value chain sums to value added", prop.ForAll(
		func(seed int64) bool {
			raw, dims := randomEconomy(seed)
			tbl, err := iotable.Parse(raw, dims)
			if err != nil {
				return false
			}
			m, err := mrio.Build(tbl)
			if err != nil {
				return false
			}
			vc, err := mrio.ValueChain(m)
			if err != nil {
				return false
			}
			var total, wTotal float64
			vc.Values.Do(func(_, _ int, v float64) bool { total += v; return true })
			m.W.Do(func(_, _ int, v float64) bool { wTotal += v; return true })

			return math.Abs(total-wTotal) < 1e-6
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
