package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("COURSEHUB_TEST_INT", "nope")
	if got := Int("COURSEHUB_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("Int: want=7 got=%d", got)
	}
	t.Setenv("COURSEHUB_TEST_INT", " 12 ")
	if got := Int("COURSEHUB_TEST_INT", 7, nil); got != 12 {
		t.Fatalf("Int: want=12 got=%d", got)
	}
}

func TestDurationAcceptsSecondsAndStrings(t *testing.T) {
	t.Setenv("COURSEHUB_TEST_DUR", "3")
	if got := Duration("COURSEHUB_TEST_DUR", time.Second, nil); got != 3*time.Second {
		t.Fatalf("Duration seconds: got=%s", got)
	}
	t.Setenv("COURSEHUB_TEST_DUR", "250ms")
	if got := Duration("COURSEHUB_TEST_DUR", time.Second, nil); got != 250*time.Millisecond {
		t.Fatalf("Duration string: got=%s", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("COURSEHUB_TEST_BOOL", "yes")
	if !Bool("COURSEHUB_TEST_BOOL", false) {
		t.Fatalf("Bool: expected true")
	}
	if !Bool("COURSEHUB_TEST_BOOL_MISSING", true) {
		t.Fatalf("Bool: expected default")
	}
}

func TestFloatAndList(t *testing.T) {
	t.Setenv("COURSEHUB_TEST_FLOAT", "0.25")
	if got := Float("COURSEHUB_TEST_FLOAT", 1, nil); got != 0.25 {
		t.Fatalf("Float: want=0.25 got=%v", got)
	}
	t.Setenv("COURSEHUB_TEST_LIST", " https://a.example.com, ,https://b.example.com ")
	got := List("COURSEHUB_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("List: got=%v", got)
	}
	if def := List("COURSEHUB_TEST_LIST_MISSING", []string{"x"}); len(def) != 1 {
		t.Fatalf("List default: got=%v", def)
	}
}
