package ir

import "strings"

// Type represents a type in the verification IR.
type Type struct {
	Name     string  // "Int", "Bool", "Perm", "Ref", or a domain name
	IsDomain bool
	Args     []*Type // domain type arguments, e.g. [Int] for Seq[Int]
}

// Builtin types
var (
	TypeInt  = &Type{Name: "Int"}
	TypeBool = &Type{Name: "Bool"}
	TypePerm = &Type{Name: "Perm"}
	TypeRef  = &Type{Name: "Ref"}
)

// DomainType returns the type of values of the named domain.
func DomainType(name string, args ...*Type) *Type {
	return &Type{Name: name, IsDomain: true, Args: args}
}

// ResolveType maps a type name to a builtin type or, failing that, a domain type.
func ResolveType(name string) *Type {
	switch name {
	case "Int":
		return TypeInt
	case "Bool":
		return TypeBool
	case "Perm":
		return TypePerm
	case "Ref":
		return TypeRef
	default:
		return DomainType(name)
	}
}

// Equal reports whether two types are structurally identical.
func (t *Type) Equal(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Name != other.Name || t.IsDomain != other.IsDomain || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// String returns the surface spelling of the type, e.g. "Map[Int, Ref]".
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if len(t.Args) == 0 {
		return t.Name
	}
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return t.Name + "[" + strings.Join(args, ", ") + "]"
}
