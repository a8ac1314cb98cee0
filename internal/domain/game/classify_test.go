package game

import "testing"

func bracketSets(champ []string, cons []string) BracketSets {
	sets := BracketSets{Championship: make(map[string]struct{})}
	for _, id := range champ {
		sets.Championship[id] = struct{}{}
	}
	if cons != nil {
		sets.Consolation = make(map[string]struct{})
		for _, id := range cons {
			sets.Consolation[id] = struct{}{}
		}
	}
	return sets
}

func TestClassify(t *testing.T) {
	t.Parallel()

	sets := bracketSets([]string{"a", "b"}, []string{"c", "d"})

	t.Run("before playoff start is regular", func(t *testing.T) {
		got, inferred := Classify(14, 15, "a", "b", sets)
		if got != CategoryRegular || inferred {
			t.Fatalf("unexpected category: got=%s inferred=%v", got, inferred)
		}
	})

	t.Run("both in championship set is playoff", func(t *testing.T) {
		got, _ := Classify(15, 15, "a", "b", sets)
		if got != CategoryPlayoff {
			t.Fatalf("unexpected category: got=%s want=%s", got, CategoryPlayoff)
		}
	})

	t.Run("both in consolation set is consolation", func(t *testing.T) {
		got, inferred := Classify(16, 15, "c", "d", sets)
		if got != CategoryConsolation || inferred {
			t.Fatalf("unexpected category: got=%s inferred=%v", got, inferred)
		}
	})

	t.Run("mixed membership is ambiguous", func(t *testing.T) {
		got, _ := Classify(15, 15, "a", "c", sets)
		if got != CategoryAmbiguous {
			t.Fatalf("unexpected category: got=%s want=%s", got, CategoryAmbiguous)
		}
	})

	t.Run("missing consolation bracket falls back to non-championship", func(t *testing.T) {
		noCons := bracketSets([]string{"a", "b"}, nil)
		got, inferred := Classify(16, 15, "c", "d", noCons)
		if got != CategoryConsolation || !inferred {
			t.Fatalf("unexpected category: got=%s inferred=%v", got, inferred)
		}
	})

	t.Run("missing consolation bracket keeps mixed pairs ambiguous", func(t *testing.T) {
		noCons := bracketSets([]string{"a", "b"}, nil)
		got, _ := Classify(16, 15, "a", "c", noCons)
		if got != CategoryAmbiguous {
			t.Fatalf("unexpected category: got=%s want=%s", got, CategoryAmbiguous)
		}
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first, _ := Classify(15, 15, "a", "c", sets)
		for i := 0; i < 100; i++ {
			next, _ := Classify(15, 15, "a", "c", sets)
			if next != first {
				t.Fatalf("classification flapped on run %d: %s vs %s", i, first, next)
			}
		}
	})
}

func TestRecordMarginAndWinner(t *testing.T) {
	t.Parallel()

	rec := Record{HomeOwnerID: "a", HomePoints: 130, AwayOwnerID: "b", AwayPoints: 80}
	if rec.Margin() != 50 {
		t.Fatalf("unexpected margin: got=%v want=50", rec.Margin())
	}
	if rec.Winner() != "a" || rec.Loser() != "b" {
		t.Fatalf("unexpected winner/loser: %s/%s", rec.Winner(), rec.Loser())
	}

	tie := Record{HomeOwnerID: "a", HomePoints: 100, AwayOwnerID: "b", AwayPoints: 100}
	if tie.Winner() != "" || tie.Loser() != "" {
		t.Fatalf("tie must have no winner or loser")
	}
}
