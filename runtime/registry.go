package runtime

import (
	"sort"
	"strings"
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/lrcalc"
)

// Impl is an implementation of a function for a fixed number of arguments,
// or for a variable number of arguments.
type Impl func(args []lrcalc.Value) (lrcalc.Value, error)

// Func is a function handle. It dispatches calls on the number of arguments.
type Func struct {
	name     string
	arities  map[int]Impl
	variadic Impl
	minArgs  int
}

var _ lrcalc.Function = (*Func)(nil)

func newFunc(name string) *Func {
	return &Func{name: name, arities: make(map[int]Impl)}
}

// Name is part of interface lrcalc.Function.
func (f *Func) Name() string {
	return f.name
}

// Call is part of interface lrcalc.Function.
func (f *Func) Call(args []lrcalc.Value) (lrcalc.Value, error) {
	if impl, ok := f.arities[len(args)]; ok {
		return impl(args)
	}
	if f.variadic != nil && len(args) >= f.minArgs {
		return f.variadic(args)
	}
	return lrcalc.Value{}, lrcalc.Errorf(lrcalc.InvalidArgs,
		"%s cannot be called with %d argument(s)", f.name, len(args))
}

// Arities returns the argument counts f has implementations for, in
// ascending order. A variadic implementation is reported as -1.
func (f *Func) Arities() []int {
	var a []int
	for n := range f.arities {
		a = append(a, n)
	}
	sort.Ints(a)
	if f.variadic != nil {
		a = append(a, -1)
	}
	return a
}

// --- Registry --------------------------------------------------------------

// Registry is a stack of scopes holding constants and functions.
// It implements lrcalc.Registry. Lookups may run concurrently; definitions
// and scope operations are serialized with lookups.
type Registry struct {
	mx     sync.RWMutex
	scopes ScopeTree
}

var _ lrcalc.Registry = (*Registry)(nil)

// NewRegistry creates a registry with an empty global scope.
func NewRegistry() *Registry {
	r := &Registry{}
	r.scopes.PushNewScope("globals")
	return r
}

// PushScope opens a new innermost scope. Subsequent definitions go into
// this scope and shadow definitions of outer scopes.
func (r *Registry) PushScope(name string) *Scope {
	r.mx.Lock()
	defer r.mx.Unlock()
	return r.scopes.PushNewScope(name)
}

// PopScope closes the innermost scope. The global scope is never popped;
// for it PopScope returns nil.
func (r *Registry) PopScope() *Scope {
	r.mx.Lock()
	defer r.mx.Unlock()
	if r.scopes.Current() == r.scopes.Globals() {
		return nil
	}
	return r.scopes.PopScope()
}

// Scope returns the innermost scope.
func (r *Registry) Scope() *Scope {
	r.mx.RLock()
	defer r.mx.RUnlock()
	return r.scopes.Current()
}

// tag returns the tag for name in the innermost scope, creating it if needed.
func (r *Registry) tag(name string) *Tag {
	tag, _ := r.scopes.Current().Tags().ResolveOrDefineTag(name)
	return tag
}

// DefineConstant defines a constant in the innermost scope, replacing a
// previous value.
func (r *Registry) DefineConstant(name string, v lrcalc.Value, help ...string) *Tag {
	r.mx.Lock()
	defer r.mx.Unlock()
	tag := r.tag(name)
	tag.Typ |= ConstantType
	tag.Value = v
	tag.Help = append(tag.Help, help...)
	tracer().Debugf("defined constant %s = %v", name, v)
	return tag
}

// DefineFunction adds an implementation for arity arguments to a function
// in the innermost scope.
func (r *Registry) DefineFunction(name string, arity int, impl Impl, help ...string) *Tag {
	r.mx.Lock()
	defer r.mx.Unlock()
	tag := r.funcTag(name)
	tag.Func.arities[arity] = impl
	tag.Help = append(tag.Help, help...)
	tracer().Debugf("defined function %s/%d", name, arity)
	return tag
}

// DefineVariadic sets an implementation for minArgs or more arguments.
// Implementations for a fixed number of arguments take precedence.
func (r *Registry) DefineVariadic(name string, minArgs int, impl Impl, help ...string) *Tag {
	r.mx.Lock()
	defer r.mx.Unlock()
	tag := r.funcTag(name)
	tag.Func.variadic = impl
	tag.Func.minArgs = minArgs
	tag.Help = append(tag.Help, help...)
	tracer().Debugf("defined function %s/%d…", name, minArgs)
	return tag
}

func (r *Registry) funcTag(name string) *Tag {
	tag := r.tag(name)
	tag.Typ |= FunctionType
	if tag.Func == nil {
		tag.Func = newFunc(name)
	}
	return tag
}

// Resolve finds the tag for name, searching from the innermost scope outwards.
func (r *Registry) Resolve(name string) *Tag {
	r.mx.RLock()
	defer r.mx.RUnlock()
	tag, _ := r.scopes.Current().ResolveTag(name)
	return tag
}

// LookupConstant is part of interface lrcalc.Registry.
func (r *Registry) LookupConstant(name string) (lrcalc.Value, bool) {
	if tag := r.Resolve(name); tag != nil && tag.IsConstant() {
		return tag.Value, true
	}
	return lrcalc.Value{}, false
}

// LookupFunction is part of interface lrcalc.Registry.
func (r *Registry) LookupFunction(name string) (lrcalc.Function, bool) {
	if tag := r.Resolve(name); tag != nil && tag.IsFunction() {
		return tag.Func, true
	}
	return nil, false
}

// Help returns the description of a constant or function.
func (r *Registry) Help(name string) (string, bool) {
	tag := r.Resolve(name)
	if tag == nil {
		return "", false
	}
	return strings.Join(tag.Help, " "), true
}

// visible collects the tags visible from the innermost scope, sorted by name.
func (r *Registry) visible() *treemap.Map {
	r.mx.RLock()
	defer r.mx.RUnlock()
	tags := treemap.NewWithStringComparator()
	for sc := r.scopes.Current(); sc != nil; sc = sc.Parent {
		sc.Tags().Each(func(name string, tag *Tag) {
			if _, shadowed := tags.Get(name); !shadowed && tag.Typ != Undefined {
				tags.Put(name, tag)
			}
		})
	}
	return tags
}

// Names returns the names of all visible constants and functions, sorted.
func (r *Registry) Names() []string {
	keys := r.visible().Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Search returns the names starting with prefix (ignoring case), sorted.
func (r *Registry) Search(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var found []string
	it := r.visible().Iterator()
	for it.Next() {
		if name := it.Key().(string); strings.HasPrefix(strings.ToLower(name), prefix) {
			found = append(found, name)
		}
	}
	return found
}
