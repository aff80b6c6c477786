package runtime

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/lrcalc"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func call(t *testing.T, reg *Registry, name string, args ...lrcalc.Value) (lrcalc.Value, error) {
	f, ok := reg.LookupFunction(name)
	if !ok {
		t.Fatalf("function %s not found", name)
	}
	return f.Call(args)
}

func nums(x ...float64) []lrcalc.Value {
	v := make([]lrcalc.Value, len(x))
	for i, f := range x {
		v[i] = lrcalc.Number(f)
	}
	return v
}

func TestRegistryScopes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := NewRegistry()
	reg.DefineConstant("x", lrcalc.Number(1))
	reg.PushScope("session")
	reg.DefineConstant("x", lrcalc.Number(2))
	reg.DefineConstant("y", lrcalc.Number(3))
	if v, _ := reg.LookupConstant("x"); !v.Equal(lrcalc.Number(2)) {
		t.Errorf("expected inner x to shadow outer x, got %v", v)
	}
	if names := strings.Join(reg.Names(), " "); names != "x y" {
		t.Errorf("expected names 'x y', got %q", names)
	}
	if reg.PopScope() == nil {
		t.Fatalf("expected session scope to be popped")
	}
	if v, _ := reg.LookupConstant("x"); !v.Equal(lrcalc.Number(1)) {
		t.Errorf("expected outer x after popping scope, got %v", v)
	}
	if _, ok := reg.LookupConstant("y"); ok {
		t.Errorf("expected y to be gone with its scope")
	}
	if reg.PopScope() != nil {
		t.Errorf("expected global scope not to be popped")
	}
}

func TestFunctionArity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := NewRegistry()
	reg.DefineFunction("f", 1, func(args []lrcalc.Value) (lrcalc.Value, error) {
		return lrcalc.String("one"), nil
	})
	reg.DefineVariadic("f", 2, func(args []lrcalc.Value) (lrcalc.Value, error) {
		return lrcalc.String("many"), nil
	})
	if v, _ := call(t, reg, "f", nums(1)...); !v.Equal(lrcalc.String("one")) {
		t.Errorf("expected f(1) to dispatch to arity 1, got %v", v)
	}
	if v, _ := call(t, reg, "f", nums(1, 2, 3)...); !v.Equal(lrcalc.String("many")) {
		t.Errorf("expected f(1,2,3) to dispatch to variadic, got %v", v)
	}
	if _, err := call(t, reg, "f"); !errors.Is(err, lrcalc.InvalidArgs) {
		t.Errorf("expected f() to fail with InvalidArgs, got %v", err)
	}
	f, _ := reg.LookupFunction("f")
	if a := f.(*Func).Arities(); len(a) != 2 || a[0] != 1 || a[1] != -1 {
		t.Errorf("expected arities [1 -1], got %v", a)
	}
}

func TestStandardFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := Standard()
	tests := []struct {
		name   string
		args   []lrcalc.Value
		result float64
	}{
		{"gcd", nums(12, 16), 4},
		{"lcm", nums(4, 6), 12},
		{"log", nums(100), 2},
		{"log", nums(16777216, 2), 24},
		{"sqrt", nums(16), 4},
		{"sqrt", nums(27, 3), 3},
		{"fact", nums(5), 120},
		{"fact", nums(0), 1},
		{"permut", nums(5, 2), 20},
		{"combin", nums(5, 2), 10},
		{"combin", nums(10, 7), 120},
		{"combin", nums(4, 4), 1},
		{"fact", nums(1), 1},
		{"sum", nums(1, 3, 4), 8},
		{"sum", []lrcalc.Value{lrcalc.List(nums(1, 2)...), lrcalc.Number(3)}, 6},
		{"ave", nums(1, 2, 3, 6), 3},
		{"max", nums(1, 7, 3), 7},
		{"min", nums(4, 2, 3), 2},
		{"abs", nums(-2.5), 2.5},
		{"hypot", nums(3, 4), 5},
		{"floor", nums(2.7), 2},
		{"sqrt", []lrcalc.Value{lrcalc.String("9")}, 3},
	}
	for _, test := range tests {
		v, err := call(t, reg, test.name, test.args...)
		if err != nil {
			t.Errorf("%s%v: %v", test.name, test.args, err)
			continue
		}
		if f, ok := v.Number(); !ok || math.Abs(f-test.result) > 1e-9 {
			t.Errorf("%s%v: expected %g, got %v", test.name, test.args, test.result, v)
		}
	}
}

func TestLargeCombinatorics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := Standard()
	tests := []struct {
		name   string
		args   []lrcalc.Value
		result float64
	}{
		{"fact", nums(1e12), math.Inf(1)},
		{"fact", nums(170), 7.257415615307994e306},
		{"permut", nums(1e12, 1e12), math.Inf(1)},
		{"permut", nums(1e12, 1), 1e12},
		{"combin", nums(1e12, 1e12), 1},
		{"combin", nums(1e12, 1), 1e12},
		{"combin", nums(1e12, 5e11), math.Inf(1)},
	}
	for _, test := range tests {
		done := make(chan lrcalc.Value, 1)
		go func(name string, args []lrcalc.Value) {
			v, err := call(t, reg, name, args...)
			if err != nil {
				t.Errorf("%s%v: %v", name, args, err)
			}
			done <- v
		}(test.name, test.args)
		select {
		case v := <-done:
			f, ok := v.Number()
			if !ok {
				t.Errorf("%s%v: expected a number, got %v", test.name, test.args, v)
			} else if math.IsInf(test.result, 1) {
				if !math.IsInf(f, 1) {
					t.Errorf("%s%v: expected +Inf, got %g", test.name, test.args, f)
				}
			} else if math.Abs(f-test.result) > 1e-9*math.Abs(test.result) {
				t.Errorf("%s%v: expected %g, got %g", test.name, test.args, test.result, f)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("%s%v did not terminate", test.name, test.args)
		}
	}
}

func TestTrigonometryInDegrees(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := Standard()
	tests := []struct {
		name   string
		arg    float64
		result float64
	}{
		{"sin", 30, 0.5},
		{"cos", 60, 0.5},
		{"tan", 45, 1},
		{"asin", 1, 90},
		{"acos", 1, 0},
		{"atan", 1, 45},
	}
	for _, test := range tests {
		v, err := call(t, reg, test.name, lrcalc.Number(test.arg))
		if err != nil {
			t.Errorf("%s(%g): %v", test.name, test.arg, err)
			continue
		}
		if f, _ := v.Number(); math.Abs(f-test.result) > 1e-9 {
			t.Errorf("%s(%g): expected %g, got %g", test.name, test.arg, test.result, f)
		}
	}
}

func TestFunctionFailures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := Standard()
	tests := []struct {
		name string
		args []lrcalc.Value
		kind lrcalc.Kind
	}{
		{"gcd", nums(12), lrcalc.InvalidArgs},
		{"gcd", nums(1, 2, 3), lrcalc.InvalidArgs},
		{"gcd", nums(1.5, 2), lrcalc.InvalidArgs},
		{"fact", nums(-1), lrcalc.InvalidArgs},
		{"log", nums(8, 1), lrcalc.ZeroDivision},
		{"tan", nums(90), lrcalc.InvalidArgs},
		{"combin", nums(2, 5), lrcalc.InvalidArgs},
		{"sqrt", []lrcalc.Value{lrcalc.String("abc")}, lrcalc.InvalidArgs},
		{"rand", nums(5, 1), lrcalc.InvalidArgs},
		{"help", nums(1), lrcalc.InvalidArgs},
		{"help", []lrcalc.Value{lrcalc.String("nosuchthing")}, lrcalc.InvalidArgs},
		{"search", []lrcalc.Value{lrcalc.String("")}, lrcalc.InvalidArgs},
		{"max", nil, lrcalc.InvalidArgs},
	}
	for _, test := range tests {
		_, err := call(t, reg, test.name, test.args...)
		if !errors.Is(err, test.kind) {
			t.Errorf("%s%v: expected failure %v, got %v", test.name, test.args, test.kind, err)
		}
	}
}

func TestRandomNumbers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := Standard()
	for i := 0; i < 100; i++ {
		v, err := call(t, reg, "rand", lrcalc.Number(6))
		f, _ := v.Number()
		if err != nil || f < 1 || f > 6 || f != math.Trunc(f) {
			t.Fatalf("expected rand(6) in 1…6, got %v (%v)", v, err)
		}
		v, _ = call(t, reg, "rand")
		if f, _ = v.Number(); f < 0 || f >= 1 {
			t.Fatalf("expected rand() in [0,1), got %v", v)
		}
	}
}

func TestHelpAndSearch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lrcalc.runtime")
	defer teardown()
	//
	reg := Standard()
	v, err := call(t, reg, "help", lrcalc.String("gcd"))
	if s, _ := v.Text(); err != nil || !strings.HasPrefix(s, "gcd(a, b)") {
		t.Errorf("expected help for gcd, got %v (%v)", v, err)
	}
	v, err = call(t, reg, "search", lrcalc.String("LO"))
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"log", "log10", "log2"}
	elems := v.Elements()
	if len(elems) != len(expected) {
		t.Fatalf("expected search(\"LO\") to find %v, found %v", expected, v)
	}
	for i, e := range elems {
		if s, _ := e.Text(); s != expected[i] {
			t.Errorf("expected match %d to be %s, is %v", i, expected[i], e)
		}
	}
}
