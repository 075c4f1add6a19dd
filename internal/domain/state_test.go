package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kashko/internal/config"
)

func newState() State {
	return NewState(config.Default())
}

func TestStateZeroValues(t *testing.T) {
	var st State
	if st.Balance != 0 || st.Rate != 0 || st.ClickPower != 0 {
		t.Fatalf("expected zero values in state")
	}
	if st.Upgrades != nil || st.Markers != nil {
		t.Fatalf("expected nil slices")
	}
}

func TestNewStateInitial(t *testing.T) {
	st := newState()
	assert.Zero(t, st.Balance)
	assert.Zero(t, st.Rate)
	assert.Equal(t, 1.0, st.ClickPower)
	assert.Equal(t, 1.0, st.Scale)
	require.Len(t, st.Upgrades, 5)
	for _, u := range st.Upgrades {
		assert.Zero(t, u.Owned, u.ID)
	}
}

func TestClick(t *testing.T) {
	st := newState()
	got := st.Click()
	assert.Equal(t, 1.0, got)
	assert.Equal(t, 1.0, st.Balance)
}

func TestTickNoRateIsNoop(t *testing.T) {
	st := newState()
	st.Balance = 3
	assert.Zero(t, st.Tick(10))
	assert.Equal(t, 3.0, st.Balance)
}

func TestTickAddsRateOverTen(t *testing.T) {
	st := newState()
	st.Rate = 0.1
	st.Tick(10)
	assert.Equal(t, 0.1/10, st.Balance)

	st = newState()
	st.Rate = 126.1
	st.Tick(10)
	assert.Equal(t, 126.1/10, st.Balance)
}

func TestPurchaseInsufficientFundsLeavesStateAlone(t *testing.T) {
	st := newState()
	st.Balance = 14
	before := st.Clone()

	_, err := st.Purchase("cursor", 1.15)
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, before, st)
}

func TestPurchaseUnknownUpgrade(t *testing.T) {
	st := newState()
	st.Balance = 1e9
	before := st.Clone()

	_, err := st.Purchase("rocket", 1.15)
	require.ErrorIs(t, err, ErrUnknownUpgrade)
	assert.Equal(t, before, st)
}

func TestPurchaseAppliesAllMutations(t *testing.T) {
	st := newState()
	st.Balance = 20

	rec, err := st.Purchase("cursor", 1.15)
	require.NoError(t, err)

	assert.Equal(t, 15.0, rec.Paid)
	assert.Equal(t, 5.0, st.Balance)
	assert.Equal(t, 1, rec.Upgrade.Owned)
	assert.Equal(t, 17.0, rec.Upgrade.Cost)
	assert.Equal(t, 0.1, st.Rate)

	u, ok := st.Upgrade("cursor")
	require.True(t, ok)
	assert.Equal(t, rec.Upgrade, u)
}

func TestPurchaseExactBalance(t *testing.T) {
	st := newState()
	st.Balance = 100
	_, err := st.Purchase("toilet", 1.15)
	require.NoError(t, err)
	assert.Zero(t, st.Balance)
}

func TestCostEscalatesIteratively(t *testing.T) {
	for _, def := range config.Default().Catalog {
		t.Run(def.ID, func(t *testing.T) {
			st := newState()
			want := def.Cost
			for n := 1; n <= 40; n++ {
				st.Balance = math.Inf(1)
				_, err := st.Purchase(def.ID, 1.15)
				require.NoError(t, err)
				want = math.Floor(want * 1.15)

				u, _ := st.Upgrade(def.ID)
				require.Equal(t, want, u.Cost, "after %d purchases", n)
				require.Equal(t, n, u.Owned)
			}
		})
	}
}

func TestCursorCostSequence(t *testing.T) {
	st := newState()
	var costs []float64
	for i := 0; i < 5; i++ {
		st.Balance = 1e6
		_, err := st.Purchase("cursor", 1.15)
		require.NoError(t, err)
		u, _ := st.Upgrade("cursor")
		costs = append(costs, u.Cost)
	}
	assert.Equal(t, []float64{17, 19, 21, 24, 27}, costs)
}

func TestRateMatchesOwnedSum(t *testing.T) {
	st := newState()
	buys := []string{"cursor", "toilet", "cursor", "factory", "mine", "farm", "cursor", "toilet"}
	for _, id := range buys {
		st.Balance = 1e9
		_, err := st.Purchase(id, 1.15)
		require.NoError(t, err)
		assert.InDelta(t, st.ExpectedRate(), st.Rate, 1e-9)
	}
	assert.InDelta(t, 0.3+2+5+20+100, st.Rate, 1e-9)
}

func TestCloneIsDeep(t *testing.T) {
	st := newState()
	st.AddMarker(Marker{ID: "m1", X: 1, Y: 2, Amount: 1})

	c := st.Clone()
	c.Upgrades[0].Owned = 99
	c.Markers[0].X = 42

	assert.Zero(t, st.Upgrades[0].Owned)
	assert.Equal(t, 1, st.Markers[0].X)
}

func TestMarkers(t *testing.T) {
	st := newState()
	st.AddMarker(Marker{ID: "a"})
	st.AddMarker(Marker{ID: "b"})

	assert.True(t, st.RemoveMarker("a"))
	assert.False(t, st.RemoveMarker("a"))
	require.Len(t, st.Markers, 1)
	assert.Equal(t, "b", st.Markers[0].ID)
}
