package semantic

import (
	"testing"

	"github.com/kolkov/ucalc/internal/ast"
	"github.com/kolkov/ucalc/internal/parser"
)

func parse(t *testing.T, src string) ast.Node {
	t.Helper()
	root, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return root
}

func kinds(errs []*Error) []ErrorKind {
	out := make([]ErrorKind, len(errs))
	for i, e := range errs {
		out[i] = e.Kind
	}
	return out
}

func TestCheckValid(t *testing.T) {
	tests := []string{
		"1",
		"1+2*3",
		"(1+2)*3",
		"with x: x+1",
		"with x, y: x*y+x",
		"with x: 1", // declared but unused is not an error
	}

	for _, src := range tests {
		t.Run(src, func(t *testing.T) {
			if errs := Check(parse(t, src)); len(errs) != 0 {
				t.Errorf("Check(%q) = %v, want no errors", src, errs)
			}
		})
	}
}

func TestCheckDuplicateDeclaration(t *testing.T) {
	errs := Check(parse(t, "with x, x: x"))
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}
	if errs[0].Kind != DuplicateDeclaration {
		t.Errorf("kind = %v, want DuplicateDeclaration", errs[0].Kind)
	}
	if errs[0].Name != "x" {
		t.Errorf("name = %q, want x", errs[0].Name)
	}
}

func TestCheckUndeclaredUse(t *testing.T) {
	tests := []struct {
		input string
		names []string
	}{
		{"x+1", []string{"x"}},
		{"x+y", []string{"x", "y"}},
		{"with x: x+y", []string{"y"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			errs := Check(parse(t, tt.input))
			if len(errs) != len(tt.names) {
				t.Fatalf("got %d errors, want %d: %v", len(errs), len(tt.names), errs)
			}
			for i, want := range tt.names {
				if errs[i].Kind != UndeclaredUse {
					t.Errorf("error[%d] kind = %v, want UndeclaredUse", i, errs[i].Kind)
				}
				if errs[i].Name != want {
					t.Errorf("error[%d] name = %q, want %q", i, errs[i].Name, want)
				}
			}
		})
	}
}

func TestCheckAccumulates(t *testing.T) {
	// Duplicate declaration and undeclared use in one program; the checker
	// reports both in one pass.
	errs := Check(parse(t, "with x, x: x+y"))
	got := kinds(errs)
	want := []ErrorKind{DuplicateDeclaration, UndeclaredUse}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("error[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCheckDuplicateStillProcessesRest(t *testing.T) {
	// After a duplicate, the remaining names and the body are still checked.
	errs := Check(parse(t, "with x, x, y: y+z"))
	got := kinds(errs)
	want := []ErrorKind{DuplicateDeclaration, UndeclaredUse}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestCheckNilRoot(t *testing.T) {
	// An absent root means the parse failed; there is nothing to check.
	if errs := Check(nil); len(errs) != 0 {
		t.Errorf("Check(nil) = %v, want no errors", errs)
	}
}

func TestCheckIncompleteTree(t *testing.T) {
	// Parser recovery can leave nil operands and bodies; the checker must
	// flag them without crashing.
	tests := []struct {
		name string
		node ast.Node
		want []ErrorKind
	}{
		{
			"nil right operand",
			&ast.BinaryExpr{Op: ast.Plus, Left: &ast.Factor{Kind: ast.Number, Value: "1"}},
			[]ErrorKind{IncompleteExpr},
		},
		{
			"nil both operands",
			&ast.BinaryExpr{Op: ast.Mul},
			[]ErrorKind{IncompleteExpr, IncompleteExpr},
		},
		{
			"nil with body",
			&ast.WithDecl{Vars: []ast.Var{{Name: "x"}}},
			[]ErrorKind{IncompleteExpr},
		},
		{
			"present side still checked",
			&ast.BinaryExpr{Op: ast.Plus, Left: &ast.Factor{Kind: ast.Ident, Value: "x"}},
			[]ErrorKind{UndeclaredUse, IncompleteExpr},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Check(tt.node))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("error[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCheckRecoveredParse(t *testing.T) {
	// End-to-end: a recovered parse with an absent operand flows into the
	// checker and is reported, not crashed on.
	root, err := parser.Parse("1+*2")
	if err == nil {
		t.Fatal("expected parse errors")
	}
	if root == nil {
		t.Fatal("expected partial tree from factor-level recovery")
	}
	errs := Check(root)
	if len(errs) == 0 {
		t.Fatal("expected IncompleteExpr error from checker")
	}
	if errs[0].Kind != IncompleteExpr {
		t.Errorf("kind = %v, want IncompleteExpr", errs[0].Kind)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: DuplicateDeclaration, Name: "x"}, `variable "x" already declared`},
		{&Error{Kind: UndeclaredUse, Name: "y"}, `variable "y" not declared`},
		{&Error{Kind: IncompleteExpr}, "incomplete expression"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}
