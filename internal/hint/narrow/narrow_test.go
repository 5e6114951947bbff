package narrow

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	labels := [][]string{{"aa", "ab", "ba"}}

	tests := []struct {
		input     string
		wantCap   Capability
		wantCount int
		wantIdx   []int
	}{
		{"", Narrowed, 3, []int{0, 1, 2}},
		{"a", Narrowed, 2, []int{0, 1}},
		{"aa", CanNavigate, 1, []int{0}},
		{"AB", CanNavigate, 1, []int{1}},
		{"b", CanNavigate, 1, []int{2}},
		{"z", NotMatch, 0, nil},
		{"aaa", NotMatch, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Classify(labels, tt.input)
			if got.Capability != tt.wantCap {
				t.Errorf("Classify(%q).Capability = %v, want %v", tt.input, got.Capability, tt.wantCap)
			}
			if got.Count != tt.wantCount {
				t.Errorf("Classify(%q).Count = %d, want %d", tt.input, got.Count, tt.wantCount)
			}
			if !reflect.DeepEqual(got.Matches[0], tt.wantIdx) {
				t.Errorf("Classify(%q).Matches[0] = %v, want %v", tt.input, got.Matches[0], tt.wantIdx)
			}
		})
	}
}

func TestClassifyGroups(t *testing.T) {
	labels := [][]string{{"a", "s"}, {"d", "fa", "fs"}, {}}

	res := Classify(labels, "f")
	if res.Capability != Narrowed || res.Count != 2 {
		t.Fatalf("Classify(f) = %v/%d, want narrowed/2", res.Capability, res.Count)
	}
	if len(res.Matches) != 3 {
		t.Fatalf("len(Matches) = %d, want 3", len(res.Matches))
	}
	if len(res.Matches[0]) != 0 || !reflect.DeepEqual(res.Matches[1], []int{1, 2}) {
		t.Errorf("Matches = %v", res.Matches)
	}

	res = Classify(labels, "fS")
	g, i, ok := res.Single()
	if !ok || g != 1 || i != 2 {
		t.Errorf("Single() = %d, %d, %v, want 1, 2, true", g, i, ok)
	}
}

func TestClassifyMetacharacters(t *testing.T) {
	labels := [][]string{{".a", "*b", "(c"}}

	if res := Classify(labels, "."); res.Capability != CanNavigate {
		t.Errorf("Classify(.) = %v, want can-navigate", res.Capability)
	}
	if res := Classify(labels, "["); res.Capability != NotMatch {
		t.Errorf("Classify([) = %v, want not-match", res.Capability)
	}
}

func TestSingleNotNavigable(t *testing.T) {
	res := Classify([][]string{{"a", "b"}}, "")
	if _, _, ok := res.Single(); ok {
		t.Error("Single() should fail for a narrowed result")
	}
}

func TestHasPrefix(t *testing.T) {
	tests := []struct {
		label, input string
		want         bool
	}{
		{"abc", "", true},
		{"abc", "a", true},
		{"abc", "ABC", true},
		{"abc", "abcd", false},
		{"", "a", false},
		{"ñb", "Ñ", true},
		{"ab", "b", false},
	}
	for _, tt := range tests {
		if got := HasPrefix(tt.label, tt.input); got != tt.want {
			t.Errorf("HasPrefix(%q, %q) = %v, want %v", tt.label, tt.input, got, tt.want)
		}
	}
}

func TestAppend(t *testing.T) {
	if got := Append("a", 'B'); got != "aB" {
		t.Errorf("Append() = %q, want %q", got, "aB")
	}
}

func TestUndo(t *testing.T) {
	got, sig := Undo("ab")
	if got != "a" || sig != NarrowAgain {
		t.Errorf("Undo(ab) = %q, %v, want a, narrow-again", got, sig)
	}

	got, sig = Undo("añ")
	if got != "a" || sig != NarrowAgain {
		t.Errorf("Undo(añ) = %q, %v", got, sig)
	}

	got, sig = Undo("")
	if got != "" || sig != Cancel {
		t.Errorf("Undo('') = %q, %v, want '', cancel", got, sig)
	}
}

func TestCapabilityString(t *testing.T) {
	if CanNavigate.String() != "can-navigate" || Narrowed.String() != "narrowed" || NotMatch.String() != "not-match" {
		t.Error("unexpected capability names")
	}
}
