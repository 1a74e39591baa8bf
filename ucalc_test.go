package ucalc_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/ucalc"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		program string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:    "precedence",
			program: "1+2*3",
			want:    "The result is: 7\n",
		},
		{
			name:    "parentheses",
			program: "(1+2)*3",
			want:    "The result is: 9\n",
		},
		{
			name:    "truncating division",
			program: "7/2",
			want:    "The result is: 3\n",
		},
		{
			name:    "single variable",
			program: "with x: x+1",
			input:   "4\n",
			want:    "The result is: 5\n",
		},
		{
			name:    "multiple variables",
			program: "with x, y: x*y+1",
			input:   "6\n7\n",
			want:    "The result is: 43\n",
		},
		{
			name:    "division by zero",
			program: "1/0",
			wantErr: true,
		},
		{
			name:    "invalid variable input",
			program: "with x: x",
			input:   "not a number\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ucalc.Run(tt.program, strings.NewReader(tt.input), nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				var runtimeErr *ucalc.RuntimeError
				if !errors.As(err, &runtimeErr) {
					t.Errorf("error type = %T, want *RuntimeError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name     string
		program  string
		syntax   bool // true: ParseError, false: SemanticError
	}{
		{"missing colon and body", "with x", true},
		{"trailing tokens", "1+2 3", true},
		{"bad factor", "1+*2", true},
		{"empty program", "", true},
		{"duplicate declaration", "with x, x: x", false},
		{"undeclared use", "x+1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ucalc.Compile(tt.program)
			if err == nil {
				t.Fatal("expected error")
			}

			var parseErr *ucalc.ParseError
			var semErr *ucalc.SemanticError
			if tt.syntax {
				if !errors.As(err, &parseErr) {
					t.Errorf("error = %v (%T), want *ParseError", err, err)
				}
			} else {
				if !errors.As(err, &semErr) {
					t.Errorf("error = %v (%T), want *SemanticError", err, err)
				}
			}
		})
	}
}

func TestCompileIR(t *testing.T) {
	prog, err := ucalc.Compile("with x: x+1")
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	out := prog.IR()
	for _, want := range []string{
		"define i32 @main(",
		"declare i32 @calc_read(",
		"declare void @calc_write(",
		`c"x\00"`,
		"add nsw i32",
		"ret i32 0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("IR missing %q:\n%s", want, out)
		}
	}
}

func TestCompileWithConfig(t *testing.T) {
	prog, err := ucalc.CompileWithConfig("1+1", &ucalc.Config{
		ModuleName: "answer.expr",
		ReadFunc:   "my_read",
		WriteFunc:  "my_write",
	})
	if err != nil {
		t.Fatalf("Compile error: %v", err)
	}

	out := prog.IR()
	for _, want := range []string{
		"source_filename = \"answer.expr\"",
		"@my_read",
		"@my_write",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("IR missing %q:\n%s", want, out)
		}
	}
}

func TestWriteIR(t *testing.T) {
	prog := ucalc.MustCompile("2*3")

	var buf bytes.Buffer
	if err := prog.WriteIR(&buf); err != nil {
		t.Fatalf("WriteIR error: %v", err)
	}
	if buf.String() != prog.IR() {
		t.Error("WriteIR output differs from IR()")
	}
}

func TestProgramReuse(t *testing.T) {
	// A compiled Program is immutable; each Run is independent.
	prog := ucalc.MustCompile("with x: x*x")

	for _, tc := range []struct{ input, want string }{
		{"3\n", "The result is: 9\n"},
		{"5\n", "The result is: 25\n"},
	} {
		got, err := prog.Run(strings.NewReader(tc.input), nil)
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
		if got != tc.want {
			t.Errorf("output = %q, want %q", got, tc.want)
		}
	}
}

func TestRunWithOutputWriter(t *testing.T) {
	var buf bytes.Buffer
	got, err := ucalc.Run("1+1", nil, &ucalc.Config{Output: &buf})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got != "" {
		t.Errorf("captured output = %q, want empty when Output is set", got)
	}
	if buf.String() != "The result is: 2\n" {
		t.Errorf("written output = %q", buf.String())
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on invalid program")
		}
	}()
	ucalc.MustCompile("with x")
}

func TestProgramSource(t *testing.T) {
	src := "with x: x+1"
	prog := ucalc.MustCompile(src)
	if prog.Source() != src {
		t.Errorf("Source() = %q, want %q", prog.Source(), src)
	}
	if !strings.Contains(prog.AST(), "WithDecl [x]") {
		t.Errorf("AST() output missing WithDecl:\n%s", prog.AST())
	}
}
