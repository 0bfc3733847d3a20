package object

import "fmt"

// Builtins is a collection of predefined built-in functions available for use within the language.
var Builtins = []struct {
	// The name of the built-in function.
	Name string

	// The definition (and implementation) of the built-in function.
	Builtin *Builtin
}{
	{
		"len",
		&Builtin{Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			switch arg := args[0].(type) {
			case *String:
				return &Integer{Value: int64(len(arg.Value))}

			case *Array:
				return &Integer{Value: int64(len(arg.Elements))}

			case *Hash:
				return &Integer{Value: int64(len(arg.Pairs))}

			default:
				return newError("argument to `len` not supported, got %s", args[0].Type())
			}
		},
		},
	},
	{
		"puts",
		&Builtin{Fn: func(args ...Object) Object {
			for i, arg := range args {
				if i > 0 {
					fmt.Print(" ")
				}
				if s, ok := arg.(*String); ok {
					fmt.Print(s.Value)
				} else {
					fmt.Print(arg.Inspect())
				}
			}
			fmt.Println()
			return NULL
		},
		},
	},
	{
		"first",
		&Builtin{Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			switch arg := args[0].(type) {
			case *String:
				if len(arg.Value) > 0 {
					return &String{Value: arg.Value[:1]}
				}
				return NULL
			case *Array:
				if len(arg.Elements) > 0 {
					return arg.Elements[0]
				}
				return NULL
			default:
				return newError("argument to `first` not supported, got %s", args[0].Type())
			}
		},
		},
	},
	{
		"last",
		&Builtin{Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			switch arg := args[0].(type) {
			case *String:
				length := len(arg.Value)
				if length > 0 {
					return &String{Value: arg.Value[length-1:]}
				}
				return NULL
			case *Array:
				length := len(arg.Elements)
				if length > 0 {
					return arg.Elements[length-1]
				}
				return NULL

			default:
				return newError("argument to `last` not supported, got %s", args[0].Type())
			}
		},
		},
	},
	{
		"rest",
		&Builtin{Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			switch arg := args[0].(type) {
			case *String:
				if len(arg.Value) > 1 {
					return &String{Value: arg.Value[1:]}
				}
				return NULL
			case *Array:
				length := len(arg.Elements)
				if length > 1 {
					newElements := make([]Object, length-1)
					copy(newElements, arg.Elements[1:length])
					return &Array{Elements: newElements}
				}
				return NULL
			default:
				return newError("argument to `rest` not supported, got %s", args[0].Type())
			}
		},
		},
	},
	{
		"push",
		&Builtin{Fn: func(args ...Object) Object {
			switch len(args) {
			case 2:
				return pushTwo(args[0], args[1])
			case 3:
				return pushThree(args[0], args[1], args[2])
			default:
				return newError("wrong number of arguments. got=%d, want=2 or 3", len(args))
			}
		},
		},
	},
	{
		"type",
		&Builtin{Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			return &String{Value: string(args[0].Type())}
		},
		},
	},
	{
		"chr",
		&Builtin{Fn: func(args ...Object) Object {
			if len(args) != 1 {
				return newError("wrong number of arguments. got=%d, want=1", len(args))
			}
			i, ok := args[0].(*Integer)
			if !ok {
				return newError("argument to `chr` not supported, got %s", args[0].Type())
			}
			if i.Value < 0 || i.Value > 127 {
				return newError("number %d is out of range to be an ascii character", i.Value)
			}
			return &String{Value: string(rune(i.Value))}
		},
		},
	},
}

// pushTwo implements the 2-argument form of `push`: array append or string concatenation.
func pushTwo(lhs, rhs Object) Object {
	switch lhs := lhs.(type) {
	case *Array:
		length := len(lhs.Elements)
		newElements := make([]Object, length+1)
		copy(newElements, lhs.Elements)
		newElements[length] = rhs
		return &Array{Elements: newElements}

	case *String:
		rhsStr, ok := rhs.(*String)
		if !ok {
			return newError("argument of type %s and %s to `push` are not supported", lhs.Type(), rhs.Type())
		}
		return &String{Value: lhs.Value + rhsStr.Value}

	default:
		return newError("argument of type %s and %s to `push` are not supported", lhs.Type(), rhs.Type())
	}
}

// pushThree implements the 3-argument form of `push`: a non-mutating hash insert/update.
func pushThree(lhs, key, val Object) Object {
	h, ok := lhs.(*Hash)
	if !ok {
		return newError("argument of type %s, %s and %s to `push` are not supported", lhs.Type(), key.Type(), val.Type())
	}
	hashable, ok := key.(Hashable)
	if !ok {
		return newError("type %s is not hashable", key.Type())
	}

	newPairs := make(map[HashKey]HashPair, len(h.Pairs)+1)
	for k, v := range h.Pairs {
		newPairs[k] = v
	}
	newPairs[hashable.HashKey()] = HashPair{Key: key, Value: val}
	return &Hash{Pairs: newPairs}
}

func newError(format string, a ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, a...)}
}

// GetBuiltinByName retrieves a built-in function definition by its name from the predefined [Builtins] collection.
//
// It returns a pointer to the corresponding [Builtin] or nil if the name is not found.
func GetBuiltinByName(name string) *Builtin {
	for _, def := range Builtins {
		if def.Name == name {
			return def.Builtin
		}
	}
	return nil
}
