package ir

import "testing"

func TestProgramLookups(t *testing.T) {
	prog := listProgram()
	prog.Functions = []*Function{{Name: "len", Result: TypeInt}}

	if prog.FindPredicate("list") == nil {
		t.Error("expected predicate list")
	}
	if prog.FindPredicate("tree") != nil {
		t.Error("unexpected predicate tree")
	}
	if prog.FindDomain("PredicateInstance") == nil {
		t.Error("expected domain PredicateInstance")
	}
	if prog.FindField("next") == nil {
		t.Error("expected field next")
	}
	if prog.FindFunction("len") == nil {
		t.Error("expected function len")
	}
	if prog.FindMethod("m") == nil {
		t.Error("expected method m")
	}

	fn, dom := prog.FindDomainFunction("nestedPredicates")
	if fn == nil || dom == nil {
		t.Fatal("expected domain function nestedPredicates")
	}
	if dom.Name != "WellFoundedOrder" {
		t.Errorf("expected owning domain WellFoundedOrder, got %s", dom.Name)
	}
	if fn, dom := prog.FindDomainFunction("len"); fn != nil || dom != nil {
		t.Error("program functions are not domain functions")
	}
}

func TestFormals(t *testing.T) {
	decls := []*LocalVarDecl{{Name: "a", Type: TypeInt}, {Name: "r", Type: TypeRef}}

	vars := Formals(decls)
	if len(vars) != 2 {
		t.Fatalf("expected 2 variables, got %d", len(vars))
	}
	for i, v := range vars {
		lv := v.(*LocalVar)
		if lv.Name != decls[i].Name || lv.Type != decls[i].Type {
			t.Errorf("variable %d: got %s: %s", i, lv.Name, lv.Type)
		}
	}
}

func TestTypes(t *testing.T) {
	tests := []struct {
		name string
		typ  *Type
		want string
	}{
		{"builtin", ResolveType("Int"), "Int"},
		{"domain", ResolveType("PredicateInstance"), "PredicateInstance"},
		{"generic", DomainType("Map", TypeInt, TypeRef), "Map[Int, Ref]"},
		{"nil", nil, "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	if !DomainType("Seq", TypeInt).Equal(DomainType("Seq", TypeInt)) {
		t.Error("equal domain types compare unequal")
	}
	if DomainType("Seq", TypeInt).Equal(DomainType("Seq", TypeRef)) {
		t.Error("different type arguments compare equal")
	}
	if ResolveType("Ref") != TypeRef {
		t.Error("builtin types should be shared")
	}
	if !ResolveType("X").IsDomain {
		t.Error("unknown names resolve to domain types")
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		pos  Position
		want string
	}{
		{Position{File: "a.yaml", Line: 3, Column: 7}, "a.yaml:3:7"},
		{Position{Line: 3, Column: 7}, "3:7"},
		{Position{File: "a.yaml"}, "a.yaml"},
	}
	for _, tt := range tests {
		if got := tt.pos.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
