package interp

// Class is a runtime class value: a name, an optional superclass, and
// its own methods (inherited methods are found by walking Superclass,
// not copied in). Methods are shared across all instances; only fields
// are per-instance.
type Class struct {
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) String() string { return "<class> " + c.Name }

// Arity is the initializer's arity, or 0 if the class defines none —
// instantiating a class with no init takes no arguments.
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call instantiates the class: it allocates a fresh Instance and, if an
// `init` method exists anywhere in the superclass chain, runs it bound
// to that instance.
func (c *Class) Call(in *Interpreter, args []Value) (Value, error) {
	instance := &Instance{Class: c, fields: make(map[string]Value)}
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// FindMethod looks up name on c, then walks the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Instance is a single object of a Class: a reference to its class plus
// mutable per-instance fields.
type Instance struct {
	Class  *Class
	fields map[string]Value
}

func (i *Instance) String() string { return "<" + i.Class.Name + " instance>" }

// Get resolves a property: instance fields shadow methods, and a method
// hit is returned already bound to this instance.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.fields[name]; ok {
		return v, true
	}
	if m := i.Class.FindMethod(name); m != nil {
		return m.bind(i), true
	}
	return nil, false
}

// Set creates or overwrites a field; Lox instances have no fixed shape.
func (i *Instance) Set(name string, value Value) {
	i.fields[name] = value
}
