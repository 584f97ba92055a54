package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSplitList(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	for i, test := range []struct {
		input string
		elems []string
	}{
		{`1`, []string{"1"}},
		{`1, 2, 3`, []string{"1", "2", "3"}},
		{` a ,b,	c `, []string{"a", "b", "c"}},
		{`a b, c`, []string{"a b", "c"}},
		{`"one, two", x`, []string{`"one, two"`, "x"}},
		{`안녕, 세계`, []string{"안녕", "세계"}},
	} {
		elems, err := SplitList(test.input)
		if err != nil {
			t.Errorf("test %d: unexpected error %v", i, err)
			continue
		}
		if len(elems) != len(test.elems) {
			t.Errorf("test %d: expected %v, have %v", i, test.elems, elems)
			continue
		}
		for j := range elems {
			if elems[j] != test.elems[j] {
				t.Errorf("test %d: expected element %q, have %q", i, test.elems[j], elems[j])
			}
		}
	}
}

func TestSplitListErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "laver.grammar")
	defer teardown()
	//
	for i, input := range []string{`1,,2`, `,1`, `1,`, ` `, `"open, 1`} {
		if elems, err := SplitList(input); err == nil {
			t.Errorf("test %d: expected %q to fail, have %v", i, input, elems)
		}
	}
}
