package services

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlots_DefaultDay(t *testing.T) {
	slots := DefaultCatalog()
	assert.Len(t, slots, 16)
	assert.Equal(t, "09:00", slots[0])
	assert.Equal(t, "09:30", slots[1])
	assert.Equal(t, "16:30", slots[15])
}

func TestGenerateSlots_CountAndOrder(t *testing.T) {
	cases := []struct{ start, end, interval int }{
		{9, 17, 30}, {9, 17, 45}, {0, 24, 60}, {8, 9, 7}, {10, 12, 120}, {10, 11, 90},
	}
	for _, tc := range cases {
		slots := GenerateSlots(tc.start, tc.end, tc.interval)
		minutes := (tc.end - tc.start) * 60
		want := (minutes + tc.interval - 1) / tc.interval
		assert.Len(t, slots, want, "%+v", tc)
		assert.True(t, sort.StringsAreSorted(slots), "%+v", tc)

		seen := map[string]bool{}
		for _, s := range slots {
			assert.False(t, seen[s], "duplicate %s", s)
			seen[s] = true
		}
	}
}

func TestGenerateSlots_Degenerate(t *testing.T) {
	assert.Empty(t, GenerateSlots(9, 17, 0))
	assert.Empty(t, GenerateSlots(9, 17, -15))
	assert.Empty(t, GenerateSlots(17, 9, 30))
	assert.Empty(t, GenerateSlots(9, 9, 30))
}

func TestFilterAvailable(t *testing.T) {
	catalog := DefaultCatalog()
	booked := []string{"09:30", "13:00", "16:30", "18:00"}

	free := FilterAvailable(catalog, booked)
	assert.Len(t, free, 13)
	assert.Equal(t, "09:00", free[0])
	assert.NotContains(t, free, "13:00")

	union := map[string]bool{}
	for _, s := range free {
		union[s] = true
	}
	for _, s := range booked[:3] {
		assert.False(t, union[s], "booked slot %s still free", s)
		union[s] = true
	}
	assert.Len(t, union, len(catalog))
}

func TestSlotPolicyContains(t *testing.T) {
	p := DefaultSlotPolicy()
	assert.True(t, p.Contains("09:00"))
	assert.False(t, p.Contains("09:15"))
	assert.False(t, p.Contains("17:00"))
}
