package lrcalc

// Registry resolves identifiers of an expression to constants or functions.
// It is handed to the evaluator explicitly; there are no process-wide
// lookup tables.
type Registry interface {
	LookupConstant(name string) (Value, bool)
	LookupFunction(name string) (Function, bool)
}

// Function is a handle for a callable function. Call receives the fully
// reduced argument list and returns a value or a failure (usually of kind
// InvalidArgs or ZeroDivision).
type Function interface {
	Name() string
	Call(args []Value) (Value, error)
}
