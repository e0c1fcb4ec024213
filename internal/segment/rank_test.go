package segment

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestRank_EqualSizesReverseDiscoveryOrder(t *testing.T) {
	// Two 2x2 blocks: the first at top-left, the second at bottom-right.
	l := labelMask(t, maskFrom(
		"##....",
		"##....",
		"......",
		"......",
		"....##",
		"....##",
	))
	require.Equal(t, 2, l.Total())

	ranked := Rank(l.Components)

	want := []Component{{ID: 2, Size: 4}, {ID: 1, Size: 4}}
	if diff := cmp.Diff(want, ranked); diff != "" {
		t.Errorf("ranked mismatch (-want +got):\n%s", diff)
	}
}

func TestRank_InsertionOrder(t *testing.T) {
	tests := []struct {
		name string
		in   []Component
		want []Component
	}{
		{
			"empty",
			nil,
			[]Component{},
		},
		{
			"single",
			[]Component{{1, 5}},
			[]Component{{1, 5}},
		},
		{
			"already descending",
			[]Component{{1, 9}, {2, 5}, {3, 1}},
			[]Component{{1, 9}, {2, 5}, {3, 1}},
		},
		{
			"ascending",
			[]Component{{1, 1}, {2, 5}, {3, 9}},
			[]Component{{3, 9}, {2, 5}, {1, 1}},
		},
		{
			"ties reversed among larger and smaller",
			[]Component{{1, 3}, {2, 7}, {3, 3}, {4, 1}, {5, 7}, {6, 3}},
			[]Component{{5, 7}, {2, 7}, {6, 3}, {3, 3}, {1, 3}, {4, 1}},
		},
		{
			"all equal",
			[]Component{{1, 2}, {2, 2}, {3, 2}, {4, 2}},
			[]Component{{4, 2}, {3, 2}, {2, 2}, {1, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rank mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	in := []Component{{1, 1}, {2, 3}, {3, 2}}
	orig := append([]Component(nil), in...)

	Rank(in)

	if diff := cmp.Diff(orig, in); diff != "" {
		t.Errorf("input modified (-orig +now):\n%s", diff)
	}
}

func TestRank_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for trial := 0; trial < 50; trial++ {
		n := rng.Intn(30)
		in := make([]Component, n)
		total := 0
		for i := range in {
			in[i] = Component{ID: i + 1, Size: 1 + rng.Intn(6)}
			total += in[i].Size
		}

		ranked := Rank(in)
		if len(ranked) != n {
			t.Fatalf("trial %d: ranked has %d entries, want %d", trial, len(ranked), n)
		}

		sum := 0
		for i, c := range ranked {
			sum += c.Size
			if i == 0 {
				continue
			}
			prev := ranked[i-1]
			if c.Size > prev.Size {
				t.Fatalf("trial %d: size increases at %d: %v then %v", trial, i, prev, c)
			}
			if c.Size == prev.Size && c.ID > prev.ID {
				t.Fatalf("trial %d: equal sizes not in descending id order: %v then %v", trial, prev, c)
			}
		}
		if sum != total {
			t.Fatalf("trial %d: size sum changed from %d to %d", trial, total, sum)
		}
	}
}

func TestTopK(t *testing.T) {
	ranked := []Component{{3, 9}, {1, 4}, {2, 1}}

	top, err := TopK(ranked, 2)
	require.NoError(t, err)
	if diff := cmp.Diff([]Component{{3, 9}, {1, 4}}, top); diff != "" {
		t.Errorf("TopK mismatch (-want +got):\n%s", diff)
	}

	top[0].Size = 100
	if ranked[0].Size != 9 {
		t.Error("TopK should return a copy")
	}

	if _, err := TopK(ranked, 4); !errors.Is(err, ErrInsufficientComponents) {
		t.Errorf("k beyond length: expected ErrInsufficientComponents, got %v", err)
	}
	if _, err := TopK(ranked, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("negative k: expected ErrInvalidArgument, got %v", err)
	}
}

func TestTop2(t *testing.T) {
	tests := []struct {
		name    string
		ranked  []Component
		wantErr bool
	}{
		{"none", nil, true},
		{"one", []Component{{1, 4}}, true},
		{"two", []Component{{2, 4}, {1, 4}}, false},
		{"three", []Component{{2, 8}, {3, 4}, {1, 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, second, err := Top2(tt.ranked)
			if tt.wantErr {
				if !errors.Is(err, ErrInsufficientComponents) {
					t.Errorf("expected ErrInsufficientComponents, got %v", err)
				}
				return
			}
			require.NoError(t, err)
			if first != tt.ranked[0] || second != tt.ranked[1] {
				t.Errorf("Top2: got %v, %v; want %v, %v", first, second, tt.ranked[0], tt.ranked[1])
			}
		})
	}
}
