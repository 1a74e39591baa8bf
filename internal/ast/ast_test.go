package ast

import (
	"strings"
	"testing"

	"github.com/kolkov/ucalc/internal/token"
)

func TestOperatorString(t *testing.T) {
	tests := []struct {
		op   Operator
		want string
	}{
		{Plus, "+"},
		{Minus, "-"},
		{Mul, "*"},
		{Div, "/"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("Operator(%d).String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestDumpExpr(t *testing.T) {
	// 1 + x
	tree := &BinaryExpr{
		Op:    Plus,
		Left:  &Factor{Kind: Number, Value: "1"},
		Right: &Factor{Kind: Ident, Value: "x"},
	}

	out := Dump(tree)
	for _, want := range []string{"BinaryExpr +", "Number 1", "Ident x"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q:\n%s", want, out)
		}
	}
}

func TestDumpWithDecl(t *testing.T) {
	tree := &WithDecl{
		Vars: []Var{{Name: "x"}, {Name: "y"}},
		Body: &BinaryExpr{
			Op:    Mul,
			Left:  &Factor{Kind: Ident, Value: "x"},
			Right: &Factor{Kind: Ident, Value: "y"},
		},
	}

	out := Dump(tree)
	for _, want := range []string{"WithDecl [x, y]", "BinaryExpr *", "Ident x", "Ident y"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump output missing %q:\n%s", want, out)
		}
	}
}

func TestDumpAbsentSubtrees(t *testing.T) {
	// A recovered parse can leave operands or bodies nil; the printer
	// must render them rather than crash.
	tests := []struct {
		name string
		node Node
	}{
		{"nil root", nil},
		{"nil operand", &BinaryExpr{Op: Div, Left: &Factor{Kind: Number, Value: "1"}}},
		{"nil body", &WithDecl{Vars: []Var{{Name: "x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Dump(tt.node)
			if !strings.Contains(out, "<nil>") {
				t.Errorf("Dump output missing <nil> marker:\n%s", out)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	start := token.Position{Line: 1, Column: 1, Offset: 0}
	end := token.Position{Line: 1, Column: 4, Offset: 3}

	f := &Factor{BaseExpr: BaseExpr{StartPos: start, EndPos: end}, Kind: Ident, Value: "abc"}
	if f.Pos() != start {
		t.Errorf("Pos() = %v, want %v", f.Pos(), start)
	}
	if f.End() != end {
		t.Errorf("End() = %v, want %v", f.End(), end)
	}

	w := &WithDecl{StartPos: start, EndPos: end, Vars: []Var{{Name: "x", Pos: start}}}
	if w.Pos() != start || w.End() != end {
		t.Errorf("WithDecl positions = %v..%v, want %v..%v", w.Pos(), w.End(), start, end)
	}
}
