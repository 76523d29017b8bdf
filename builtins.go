// builtins.go
//
// The built-in table is small and fixed: seven native procedures callable
// from Mlang source the same way a user-defined function is, resolved by
// evalIdentifier only after the environment chain has been searched and
// come up empty. Grouping them under registerXBuiltins-style sections
// mirrors how a larger standard library would be organized even though
// each of the three groups here is small.
package mlang

import "fmt"

var builtins = map[string]*Builtin{}

func init() {
	registerCollectionBuiltins()
	registerHashBuiltins()
	registerIOBuiltins()
}

// registerCollectionBuiltins installs len/first/last/rest/push, the
// built-ins that operate on Array values (len and rest also accept a
// String, push also accepts a Hash).
func registerCollectionBuiltins() {
	builtins["len"] = &Builtin{Fn: builtinLen}
	builtins["first"] = &Builtin{Fn: builtinFirst}
	builtins["last"] = &Builtin{Fn: builtinLast}
	builtins["rest"] = &Builtin{Fn: builtinRest}
	builtins["push"] = &Builtin{Fn: builtinPush}
}

// registerHashBuiltins installs erase, the one built-in specific to Hash.
func registerHashBuiltins() {
	builtins["erase"] = &Builtin{Fn: builtinErase}
}

// registerIOBuiltins installs puts, the sole sanctioned I/O surface.
func registerIOBuiltins() {
	builtins["puts"] = &Builtin{Fn: builtinPuts}
}

func builtinLen(args ...Object) Object {
	if len(args) != 1 {
		return newError("invalid number of parameters for len, expected 1 got %d", len(args))
	}
	switch arg := args[0].(type) {
	case *String:
		return &Integer{Value: int64(len(arg.Value))}
	case *Array:
		return &Integer{Value: int64(len(arg.Elements))}
	default:
		return newError("len is not implemented for type %s", args[0].Type())
	}
}

func builtinFirst(args ...Object) Object {
	if len(args) != 1 {
		return newError("invalid number of parameters for first, expected 1 got %d", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("first is not implemented for type %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return NULL
	}
	return arr.Elements[0]
}

func builtinLast(args ...Object) Object {
	if len(args) != 1 {
		return newError("invalid number of parameters for last, expected 1 got %d", len(args))
	}
	arr, ok := args[0].(*Array)
	if !ok {
		return newError("last is not implemented for type %s", args[0].Type())
	}
	if len(arr.Elements) == 0 {
		return NULL
	}
	return arr.Elements[len(arr.Elements)-1]
}

func builtinRest(args ...Object) Object {
	if len(args) != 1 {
		return newError("invalid number of parameters for rest, expected 1 got %d", len(args))
	}
	switch arg := args[0].(type) {
	case *Array:
		length := len(arg.Elements)
		if length == 0 {
			return NULL
		}
		newElements := make([]Object, length-1)
		copy(newElements, arg.Elements[1:length])
		return &Array{Elements: newElements}
	case *String:
		if len(arg.Value) == 0 {
			return NULL
		}
		return &String{Value: arg.Value[1:]}
	default:
		return newError("rest is not implemented for type %s", args[0].Type())
	}
}

// builtinPush is functionally pure for both receiver kinds: it allocates
// a new container rather than mutating the one it was handed, so a
// caller's own reference is never affected by the call.
func builtinPush(args ...Object) Object {
	if len(args) == 0 {
		return newError("invalid number of parameters for push %d", len(args))
	}
	switch arg := args[0].(type) {
	case *Array:
		if len(args) != 2 {
			return newError("invalid number of parameters for push, expected 2 got %d", len(args))
		}
		length := len(arg.Elements)
		newElements := make([]Object, length+1)
		copy(newElements, arg.Elements)
		newElements[length] = args[1]
		return &Array{Elements: newElements}
	case *Hash:
		if len(args) != 3 {
			return newError("invalid number of parameters for push, expected 3 got %d", len(args))
		}
		key, ok := args[1].(Hashable)
		if !ok {
			return newError("object of type %s is not hashable", args[1].Type())
		}
		newPairs := make(map[HashKey]HashPair, len(arg.Pairs)+1)
		for k, v := range arg.Pairs {
			newPairs[k] = v
		}
		newPairs[key.HashKey()] = HashPair{Key: args[1], Value: args[2]}
		return &Hash{Pairs: newPairs}
	default:
		return newError("push is not implemented for type %s", args[0].Type())
	}
}

// builtinErase returns a new Hash with key removed, leaving the argument
// untouched.
func builtinErase(args ...Object) Object {
	if len(args) != 2 {
		return newError("invalid number of parameters for erase, expected 2 got %d", len(args))
	}
	hash, ok := args[0].(*Hash)
	if !ok {
		return newError("erase is not implemented for type %s", args[0].Type())
	}
	key, ok := args[1].(Hashable)
	if !ok {
		return newError("object of type %s is not hashable", args[1].Type())
	}
	newPairs := make(map[HashKey]HashPair, len(hash.Pairs))
	for k, v := range hash.Pairs {
		newPairs[k] = v
	}
	delete(newPairs, key.HashKey())
	return &Hash{Pairs: newPairs}
}

func builtinPuts(args ...Object) Object {
	if len(args) < 1 {
		return newError("invalid number of parameters for puts, expected at least 1 got %d", len(args))
	}
	for _, arg := range args {
		fmt.Println(arg.Inspect())
	}
	return NULL
}
