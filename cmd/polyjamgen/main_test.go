package main

import (
	"context"
	"fmt"
	"go/parser"
	"go/token"
	"math/rand"
	"strings"
	"testing"

	"github.com/polyjam-go/polyjam/emit"
	"github.com/polyjam-go/polyjam/internal/config"
	"github.com/polyjam-go/polyjam/internal/problem"
)

// stubTransport returns a fixed Macaulay2-style reply regardless of
// the script it is handed, standing in for a real oracle binary.
type stubTransport struct{ reply string }

func (s stubTransport) Run(ctx context.Context, script string) (string, error) {
	return s.reply, nil
}

func TestBuildPlanEndToEnd(t *testing.T) {
	prob, err := problem.Parse(strings.NewReader("unknowns: x\ncoeffs: a\nx^2 - a\n"))
	if err != nil {
		t.Fatalf("parse problem: %v", err)
	}
	cfg := &config.Config{
		SolverName:     "Quadratic",
		PackageName:    "quadsolver",
		Parameters:     []string{"a"},
		Characteristic: 101,
	}
	transport := stubTransport{reply: "0\n| 1 x_1 |\n"}
	rng := rand.New(rand.NewSource(1))

	plan, err := buildPlan(context.Background(), cfg, prob, rng, transport)
	if err != nil {
		t.Fatalf("build plan: %v", err)
	}

	src, err := emit.Generate(plan, emit.Options{
		PackageName: cfg.PackageName,
		SolverName:  cfg.SolverName,
		Parameters:  cfg.Parameters,
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "quadratic.go", src, 0); err != nil {
		t.Fatalf("emitted source does not parse: %v\n---\n%s", err, src)
	}
	if !strings.Contains(src, "package quadsolver") {
		t.Errorf("missing package clause:\n%s", src)
	}
}

// This example runs the full A-K pipeline against a stub oracle
// transport (standing in for a real Macaulay2 binary) for the system
// x^2 - a = 0, then prints the emitted solver's package clause and
// exported signature.
func Example() {
	prob, err := problem.Parse(strings.NewReader("unknowns: x\ncoeffs: a\nx^2 - a\n"))
	if err != nil {
		fmt.Println(err)
		return
	}
	cfg := &config.Config{
		SolverName:     "Quadratic",
		PackageName:    "quadsolver",
		Parameters:     []string{"a"},
		Characteristic: 101,
	}
	transport := stubTransport{reply: "0\n| 1 x_1 |\n"}
	rng := rand.New(rand.NewSource(1))

	plan, err := buildPlan(context.Background(), cfg, prob, rng, transport)
	if err != nil {
		fmt.Println(err)
		return
	}
	src, err := emit.Generate(plan, emit.Options{
		PackageName: cfg.PackageName,
		SolverName:  cfg.SolverName,
		Parameters:  cfg.Parameters,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(line, "package ") || strings.HasPrefix(line, "func Solve") {
			fmt.Println(line)
		}
	}
	// Output:
	// package quadsolver
	// func SolveQuadratic(a float64) ([][]float64, error) {
}
