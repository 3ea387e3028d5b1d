package cart

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nativedelight/internal/models"
)

func item(id string, price int64) models.MenuItem {
	return models.MenuItem{ID: id, Name: "item " + id, Price: decimal.NewFromInt(price)}
}

func TestAddMergesSameItem(t *testing.T) {
	s := New()
	s.Add(item("a", 2000))
	s.Add(item("a", 2000))
	s.Add(item("b", 1500))

	require.Equal(t, 2, s.Len())
	lines := s.Lines()
	assert.Equal(t, "a", lines[0].ID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, "b", lines[1].ID)
	assert.Equal(t, 3, s.ItemCount())
	assert.True(t, s.Total().Equal(decimal.NewFromInt(5500)))
}

func TestUpdateQuantity(t *testing.T) {
	s := New()
	s.Add(item("a", 100))

	s.UpdateQuantity("a", 5)
	line, ok := s.Line("a")
	require.True(t, ok)
	assert.Equal(t, 5, line.Quantity)
	assert.True(t, line.Subtotal().Equal(decimal.NewFromInt(500)))

	s.UpdateQuantity("missing", 3)
	assert.Equal(t, 1, s.Len())

	s.UpdateQuantity("a", 0)
	assert.True(t, s.IsEmpty())
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := New()
	s.Add(item("a", 100))
	s.Add(item("b", 100))

	s.Remove("a")
	s.Remove("a")

	require.Equal(t, 1, s.Len())
	assert.Equal(t, "b", s.Lines()[0].ID)
}

func TestEmptyingCartClosesIt(t *testing.T) {
	s := New()
	s.Add(item("a", 100))
	s.Open()
	require.True(t, s.IsOpen())

	s.Remove("a")
	assert.False(t, s.IsOpen())

	s.Add(item("b", 100))
	s.Open()
	s.UpdateQuantity("b", -1)
	assert.False(t, s.IsOpen())

	s.Add(item("c", 100))
	s.Open()
	s.Clear()
	assert.False(t, s.IsOpen())
	assert.True(t, s.Total().IsZero())
}

func TestLinesReturnsCopy(t *testing.T) {
	s := New()
	s.Add(item("a", 100))

	lines := s.Lines()
	lines[0].Quantity = 99

	line, _ := s.Line("a")
	assert.Equal(t, 1, line.Quantity)
}

func TestRandomSequencesKeepTotalsConsistent(t *testing.T) {
	catalog := []models.MenuItem{
		{ID: "a", Price: decimal.RequireFromString("2000")},
		{ID: "b", Price: decimal.RequireFromString("1250.50")},
		{ID: "c", Price: decimal.RequireFromString("0.99")},
		{ID: "d", Price: decimal.RequireFromString("3500")},
	}
	ids := []string{"a", "b", "c", "d", "unknown"}
	quantities := []int{-1, 0, 1, 2, 7}

	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed*31))
			s := New()
			want := map[string]int{}

			for step := 0; step < 200; step++ {
				id := ids[rng.IntN(len(ids))]
				var op string
				removes := false
				switch rng.IntN(5) {
				case 0, 1:
					op = "add " + id
					if id == "unknown" {
						continue
					}
					s.Add(catalog[indexOfID(catalog, id)])
					want[id]++
				case 2:
					qty := quantities[rng.IntN(len(quantities))]
					op = fmt.Sprintf("update %s %d", id, qty)
					s.UpdateQuantity(id, qty)
					if qty < 1 {
						removes = true
						delete(want, id)
					} else if _, ok := want[id]; ok {
						want[id] = qty
					}
				case 3:
					op = "remove " + id
					s.Remove(id)
					removes = true
					delete(want, id)
				default:
					if rng.IntN(4) == 0 {
						op = "clear"
						s.Clear()
						removes = true
						want = map[string]int{}
					} else {
						op = "open"
						s.Open()
					}
				}

				lines := s.Lines()
				total := decimal.Zero
				count := 0
				seen := map[string]bool{}
				for _, line := range lines {
					require.False(t, seen[line.ID], "step %d (%s): duplicate line for %s", step, op, line.ID)
					seen[line.ID] = true
					require.GreaterOrEqual(t, line.Quantity, 1, "step %d (%s)", step, op)
					require.Equal(t, want[line.ID], line.Quantity, "step %d (%s): quantity of %s", step, op, line.ID)
					total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
					count += line.Quantity
				}
				require.Len(t, lines, len(want), "step %d (%s)", step, op)
				require.True(t, s.Total().Equal(total), "step %d (%s): total %s, want %s", step, op, s.Total(), total)
				require.Equal(t, count, s.ItemCount(), "step %d (%s)", step, op)

				if removes && s.IsEmpty() {
					require.False(t, s.IsOpen(), "step %d (%s): empty cart left open", step, op)
				}
			}
		})
	}
}

func indexOfID(items []models.MenuItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
