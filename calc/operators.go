package calc

import (
	"math"

	"github.com/npillmayer/lrcalc"
)

// binaryOp is the semantics of a binary operator.
type binaryOp func(a, b lrcalc.Value) (lrcalc.Value, error)

var binaryOps = map[string]binaryOp{
	"+":  add,
	"-":  arith(func(x, y float64) float64 { return x - y }),
	"*":  multiply,
	"/":  divide,
	"%":  modulo,
	"^":  arith(math.Pow),
	"**": arith(math.Pow),
	"<<": shift(func(x int64, n uint) int64 { return x << n }),
	">>": shift(func(x int64, n uint) int64 { return x >> n }),
	"&":  bitwise(func(x, y int64) int64 { return x & y }),
	"|":  bitwise(func(x, y int64) int64 { return x | y }),
	"~":  bitwise(func(x, y int64) int64 { return x ^ y }),
}

func operand(v lrcalc.Value, op string) (float64, error) {
	x, ok := v.Number()
	if !ok {
		return 0, lrcalc.Errorf(lrcalc.InvalidArgs, "operator %s expects numbers, got %s", op, v.Kind())
	}
	return x, nil
}

func operands(a, b lrcalc.Value, op string) (float64, float64, error) {
	x, err := operand(a, op)
	if err != nil {
		return 0, 0, err
	}
	y, err := operand(b, op)
	return x, y, err
}

func integral(x float64, op string) (int64, error) {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0, lrcalc.Errorf(lrcalc.InvalidArgs, "operator %s expects finite numbers", op)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	if x >= math.MaxInt64 || x < math.MinInt64 {
		return 0, lrcalc.Errorf(lrcalc.InvalidArgs, "operand %g of operator %s is out of range", x, op)
	}
	return int64(x), nil
}

func arith(f func(x, y float64) float64) binaryOp {
	return func(a, b lrcalc.Value) (lrcalc.Value, error) {
		x, y, err := operands(a, b, "arithmetic")
		if err != nil {
			return lrcalc.Value{}, err
		}
		return lrcalc.Number(f(x, y)), nil
	}
}

func add(a, b lrcalc.Value) (lrcalc.Value, error) {
	if s, ok := a.Text(); ok {
		if t, ok := b.Text(); ok {
			return lrcalc.String(s + t), nil
		}
	}
	x, y, err := operands(a, b, "+")
	if err != nil {
		return lrcalc.Value{}, err
	}
	return lrcalc.Number(x + y), nil
}

func multiply(a, b lrcalc.Value) (lrcalc.Value, error) {
	x, y, err := operands(a, b, "*")
	if err != nil {
		return lrcalc.Value{}, err
	}
	return lrcalc.Number(x * y), nil
}

func divide(a, b lrcalc.Value) (lrcalc.Value, error) {
	x, y, err := operands(a, b, "/")
	if err != nil {
		return lrcalc.Value{}, err
	} else if y == 0 {
		return lrcalc.Value{}, lrcalc.Errorf(lrcalc.ZeroDivision, "%g / 0", x)
	}
	return lrcalc.Number(x / y), nil
}

func modulo(a, b lrcalc.Value) (lrcalc.Value, error) {
	x, y, err := operands(a, b, "%")
	if err != nil {
		return lrcalc.Value{}, err
	} else if y == 0 {
		return lrcalc.Value{}, lrcalc.Errorf(lrcalc.ZeroDivision, "%g %% 0", x)
	}
	return lrcalc.Number(math.Mod(x, y)), nil
}

func shift(f func(x int64, n uint) int64) binaryOp {
	return func(a, b lrcalc.Value) (lrcalc.Value, error) {
		x, y, err := operands(a, b, "shift")
		if err != nil {
			return lrcalc.Value{}, err
		}
		i, err := integral(x, "shift")
		if err != nil {
			return lrcalc.Value{}, err
		}
		if y < 0 || y > 63 {
			return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs, "shift count %g out of range 0…63", y)
		}
		return lrcalc.Number(float64(f(i, uint(y)))), nil
	}
}

func bitwise(f func(x, y int64) int64) binaryOp {
	return func(a, b lrcalc.Value) (lrcalc.Value, error) {
		x, y, err := operands(a, b, "bitwise")
		if err != nil {
			return lrcalc.Value{}, err
		}
		i, err := integral(x, "bitwise")
		if err != nil {
			return lrcalc.Value{}, err
		}
		j, err := integral(y, "bitwise")
		if err != nil {
			return lrcalc.Value{}, err
		}
		return lrcalc.Number(float64(f(i, j))), nil
	}
}

// unary applies a prefix operator.
func unary(op string, a lrcalc.Value) (lrcalc.Value, error) {
	x, err := operand(a, op)
	if err != nil {
		return lrcalc.Value{}, err
	}
	switch op {
	case "-":
		return lrcalc.Number(-x), nil
	case "~": // complement of the lower 32 bits
		i, err := integral(x, op)
		if err != nil {
			return lrcalc.Value{}, err
		}
		return lrcalc.Number(float64(^uint32(i))), nil
	}
	return lrcalc.Number(x), nil
}
