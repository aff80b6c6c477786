package runtime

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/npillmayer/lrcalc"
)

// Standard creates a registry with the builtin constants and functions
// in its global scope.
func Standard() *Registry {
	r := NewRegistry()
	defineConstants(r)
	defineMath(r)
	defineTrigonometry(r)
	defineCombinatorics(r)
	defineReductions(r)
	defineSupport(r)
	return r
}

func defineConstants(r *Registry) {
	r.DefineConstant("pi", lrcalc.Number(math.Pi), "pi", "ratio of a circle's circumference to its diameter")
	r.DefineConstant("e", lrcalc.Number(math.E), "e", "Euler's number")
	r.DefineConstant("lbm", lrcalc.Number(0.45359237), "lbm", "1 pound = 0.45359237 kg")
	r.DefineConstant("inch", lrcalc.Number(25.4), "inch", "1 inch = 25.4 mm")
	r.DefineConstant("feet", lrcalc.Number(0.3048), "feet", "1 foot = 0.3048 m")
	r.DefineConstant("yard", lrcalc.Number(0.9144), "yard", "1 yard = 0.9144 m")
	r.DefineConstant("mile", lrcalc.Number(1.609344), "mile", "1 mile = 1.609344 km")
}

func defineMath(r *Registry) {
	r.DefineFunction("log", 1, unary("log", math.Log10), "log(n): logarithm of n to base 10;")
	r.DefineFunction("log", 2, func(args []lrcalc.Value) (lrcalc.Value, error) {
		a, b, err := twoNumbers("log", args)
		if err != nil {
			return lrcalc.Value{}, err
		}
		if math.Log(b) == 0 {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.ZeroDivision, "log(a, b) with log(b) = 0")
		}
		return lrcalc.Number(math.Log(a) / math.Log(b)), nil
	}, "log(a, b): logarithm of a to base b")
	r.DefineFunction("ln", 1, unary("ln", math.Log), "ln(n): natural logarithm of n")
	r.DefineFunction("log10", 1, unary("log10", math.Log10), "log10(n): logarithm of n to base 10")
	r.DefineFunction("log2", 1, unary("log2", math.Log2), "log2(n): logarithm of n to base 2")
	r.DefineFunction("sqrt", 1, unary("sqrt", math.Sqrt), "sqrt(n): square root of n;")
	r.DefineFunction("sqrt", 2, binary("sqrt", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, lrcalc.Errorf(lrcalc.ZeroDivision, "sqrt(a, b) with b = 0")
		}
		return math.Pow(a, 1/b), nil
	}), "sqrt(a, b): b-th root of a")
	r.DefineFunction("floor", 1, unary("floor", math.Floor), "floor(n): greatest integer <= n")
	r.DefineFunction("ceil", 1, unary("ceil", math.Ceil), "ceil(n): smallest integer >= n")
	r.DefineFunction("round", 1, unary("round", math.Round), "round(n): nearest integer, half away from zero")
	r.DefineFunction("abs", 1, unary("abs", math.Abs), "abs(n): absolute value of n")
	r.DefineFunction("hypot", 2, binary("hypot", func(a, b float64) (float64, error) {
		return math.Hypot(a, b), nil
	}), "hypot(a, b): sqrt(a*a + b*b)")
	r.DefineFunction("rand", 0, func(args []lrcalc.Value) (lrcalc.Value, error) {
		return lrcalc.Number(rand.Float64()), nil
	}, "rand(): random number in [0, 1);")
	r.DefineFunction("rand", 1, func(args []lrcalc.Value) (lrcalc.Value, error) {
		n, err := integer("rand", args[0])
		if err != nil {
			return lrcalc.Value{}, err
		}
		if n < 1 {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "rand(n) requires n >= 1")
		}
		return lrcalc.Number(float64(rand.Int63n(n) + 1)), nil
	}, "rand(n): random integer in [1, n];")
	r.DefineFunction("rand", 2, func(args []lrcalc.Value) (lrcalc.Value, error) {
		a, err := integer("rand", args[0])
		if err != nil {
			return lrcalc.Value{}, err
		}
		b, err := integer("rand", args[1])
		if err != nil {
			return lrcalc.Value{}, err
		}
		if a >= b {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "rand(a, b) requires a < b")
		}
		return lrcalc.Number(float64(a + rand.Int63n(b-a))), nil
	}, "rand(a, b): random integer in [a, b)")
}

func defineTrigonometry(r *Registry) {
	const deg = math.Pi / 180
	r.DefineFunction("sin", 1, unary("sin", func(x float64) float64 {
		return math.Sin(x * deg)
	}), "sin(θ): sine of θ degrees")
	r.DefineFunction("cos", 1, unary("cos", func(x float64) float64 {
		return math.Cos(x * deg)
	}), "cos(θ): cosine of θ degrees")
	r.DefineFunction("tan", 1, func(args []lrcalc.Value) (lrcalc.Value, error) {
		x, err := number("tan", args[0])
		if err != nil {
			return lrcalc.Value{}, err
		}
		if math.Mod(math.Abs(x), 180) == 90 {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "tan(%g) is undefined", x)
		}
		return lrcalc.Number(math.Tan(x * deg)), nil
	}, "tan(θ): tangent of θ degrees")
	r.DefineFunction("asin", 1, unary("asin", func(x float64) float64 {
		return math.Asin(x) / deg
	}), "asin(n): arc sine of n, in degrees")
	r.DefineFunction("acos", 1, unary("acos", func(x float64) float64 {
		return math.Acos(x) / deg
	}), "acos(n): arc cosine of n, in degrees")
	r.DefineFunction("atan", 1, unary("atan", func(x float64) float64 {
		return math.Atan(x) / deg
	}), "atan(n): arc tangent of n, in degrees")
}

func defineCombinatorics(r *Registry) {
	r.DefineFunction("fact", 1, func(args []lrcalc.Value) (lrcalc.Value, error) {
		n, err := integer("fact", args[0])
		if err != nil {
			return lrcalc.Value{}, err
		}
		if n < 0 {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "fact(n) requires n >= 0")
		}
		return lrcalc.Number(fallingFactorial(n, n)), nil
	}, "fact(n): factorial of n")
	r.DefineFunction("gcd", 2, integers2("gcd", func(a, b int64) (lrcalc.Value, error) {
		return lrcalc.Number(float64(gcd(a, b))), nil
	}), "gcd(a, b): greatest common divisor of a and b")
	r.DefineFunction("lcm", 2, integers2("lcm", func(a, b int64) (lrcalc.Value, error) {
		if a == 0 || b == 0 {
			return lrcalc.Number(0), nil
		}
		return lrcalc.Number(float64(abs(a / gcd(a, b) * b))), nil
	}), "lcm(a, b): least common multiple of a and b")
	r.DefineFunction("reduct", 2, integers2("reduct", func(a, b int64) (lrcalc.Value, error) {
		g := gcd(a, b)
		if g == 0 {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.ZeroDivision, "reduct(0, 0)")
		}
		return lrcalc.String(strconv.FormatInt(a/g, 10) + " : " + strconv.FormatInt(b/g, 10)), nil
	}), "reduct(a, b): reduce the ratio a : b")
	r.DefineFunction("permut", 2, integers2("permut", func(n, k int64) (lrcalc.Value, error) {
		if n < 1 || k < 1 || n < k {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "permut(a, b) requires a >= b > 0")
		}
		return lrcalc.Number(fallingFactorial(n, k)), nil
	}), "permut(a, b): number of ordered selections of b out of a")
	r.DefineFunction("combin", 2, integers2("combin", func(n, k int64) (lrcalc.Value, error) {
		if n < 1 || k < 1 || n < k {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "combin(a, b) requires a >= b > 0")
		}
		return lrcalc.Number(binomial(n, k)), nil
	}), "combin(a, b): number of unordered selections of b out of a")
}

func defineReductions(r *Registry) {
	r.DefineVariadic("sum", 0, reduction("sum", func(x []float64) float64 {
		s := 0.0
		for _, f := range x {
			s += f
		}
		return s
	}), "sum(n1, n2, …): sum of all arguments")
	r.DefineVariadic("ave", 0, reduction("ave", func(x []float64) float64 {
		if len(x) == 0 {
			return 0
		}
		s := 0.0
		for _, f := range x {
			s += f
		}
		return s / float64(len(x))
	}), "ave(n1, n2, …): average of all arguments")
	r.DefineVariadic("max", 1, reduction("max", func(x []float64) float64 {
		m := math.Inf(-1)
		for _, f := range x {
			m = math.Max(m, f)
		}
		return m
	}), "max(n1, n2, …): greatest argument")
	r.DefineVariadic("min", 1, reduction("min", func(x []float64) float64 {
		m := math.Inf(1)
		for _, f := range x {
			m = math.Min(m, f)
		}
		return m
	}), "min(n1, n2, …): smallest argument")
}

func defineSupport(r *Registry) {
	r.DefineFunction("help", 1, func(args []lrcalc.Value) (lrcalc.Value, error) {
		name, ok := args[0].Text()
		if !ok {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "help(\"name\") requires a string")
		}
		h, ok := r.Help(name)
		if !ok {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "no constant or function %q", name)
		}
		return lrcalc.String(h), nil
	}, `help("name"): description of a constant or function`)
	r.DefineFunction("search", 1, func(args []lrcalc.Value) (lrcalc.Value, error) {
		prefix, ok := args[0].Text()
		if !ok || prefix == "" {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "search(\"prefix\") requires a non-empty string")
		}
		var found []lrcalc.Value
		for _, name := range r.Search(prefix) {
			found = append(found, lrcalc.String(name))
		}
		return lrcalc.List(found...), nil
	}, `search("prefix"): names of constants and functions starting with prefix`)
}

// --- Argument conversion ---------------------------------------------------

// number converts an argument to a number. Strings are accepted if they
// hold a number.
func number(fname string, v lrcalc.Value) (float64, error) {
	if f, ok := v.Number(); ok {
		return f, nil
	}
	if s, ok := v.Text(); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, nil
		}
	}
	return 0, lrcalc.Errorf(lrcalc.InvalidArgs, "%s: %v is not a number", fname, v)
}

func twoNumbers(fname string, args []lrcalc.Value) (float64, float64, error) {
	a, err := number(fname, args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := number(fname, args[1])
	return a, b, err
}

// integer converts an argument to an integral number.
func integer(fname string, v lrcalc.Value) (int64, error) {
	f, err := number(fname, v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, lrcalc.Errorf(lrcalc.InvalidArgs, "%s: %g is not an integer", fname, f)
	}
	return int64(f), nil
}

// flatten converts arguments to numbers, expanding lists.
func flatten(fname string, args []lrcalc.Value, x []float64) ([]float64, error) {
	for _, a := range args {
		if a.Kind() == lrcalc.ListValue {
			var err error
			if x, err = flatten(fname, a.Elements(), x); err != nil {
				return nil, err
			}
			continue
		}
		f, err := number(fname, a)
		if err != nil {
			return nil, err
		}
		x = append(x, f)
	}
	return x, nil
}

func unary(fname string, f func(float64) float64) Impl {
	return func(args []lrcalc.Value) (lrcalc.Value, error) {
		x, err := number(fname, args[0])
		if err != nil {
			return lrcalc.Value{}, err
		}
		return lrcalc.Number(f(x)), nil
	}
}

func binary(fname string, f func(a, b float64) (float64, error)) Impl {
	return func(args []lrcalc.Value) (lrcalc.Value, error) {
		a, b, err := twoNumbers(fname, args)
		if err != nil {
			return lrcalc.Value{}, err
		}
		x, err := f(a, b)
		if err != nil {
			return lrcalc.Value{}, err
		}
		return lrcalc.Number(x), nil
	}
}

func integers2(fname string, f func(a, b int64) (lrcalc.Value, error)) Impl {
	return func(args []lrcalc.Value) (lrcalc.Value, error) {
		a, err := integer(fname, args[0])
		if err != nil {
			return lrcalc.Value{}, err
		}
		b, err := integer(fname, args[1])
		if err != nil {
			return lrcalc.Value{}, err
		}
		return f(a, b)
	}
}

func reduction(fname string, f func([]float64) float64) Impl {
	return func(args []lrcalc.Value) (lrcalc.Value, error) {
		x, err := flatten(fname, args, nil)
		if err != nil {
			return lrcalc.Value{}, err
		}
		return lrcalc.Number(f(x)), nil
	}
}

func gcd(a, b int64) int64 {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// fallingFactorial computes n·(n-1)·…·(n-k+1), for n >= k >= 0.
// The product never shrinks, so iteration stops as soon as it overflows.
func fallingFactorial(n, k int64) float64 {
	p := 1.0
	for i := int64(0); i < k && !math.IsInf(p, 1); i++ {
		p *= float64(n - i)
	}
	return p
}

// binomial computes n over k, for n >= k >= 0. Every factor is at least 2
// after folding k to the smaller side, so the loop ends soon after overflow
// even for huge arguments.
func binomial(n, k int64) float64 {
	if n-k < k {
		k = n - k
	}
	p := 1.0
	for i := int64(1); i <= k && !math.IsInf(p, 1); i++ {
		p *= float64(n-k+i) / float64(i)
	}
	return p
}
