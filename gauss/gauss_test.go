package gauss_test

import (
	"testing"

	"github.com/polyjam-go/polyjam/field"
	"github.com/polyjam-go/polyjam/gauss"
)

func TestReduceRealSystem(t *testing.T) {
	// x + y = 3, x - y = 1  =>  x=2, y=1
	rows := [][]gauss.Real{
		{1, 1, 3},
		{1, -1, 1},
	}
	m, err := gauss.NewMatrix(rows)
	if err != nil {
		t.Fatalf("new matrix: %v", err)
	}
	isZero := func(v gauss.Real) bool { return v.IsZero() }
	if err := gauss.Reduce(m, gauss.ArgmaxAbsPivot, isZero); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if m.Rows() != 2 {
		t.Fatalf("expected 2 rows after reduction, got %d", m.Rows())
	}
	if math64(m.Row(0)[2]) != 2 || math64(m.Row(1)[2]) != 1 {
		t.Fatalf("want x=2,y=1, got rows %v %v", m.Row(0), m.Row(1))
	}
}

func math64(v gauss.Real) float64 { return float64(v) }

func TestReduceDeletesZeroRows(t *testing.T) {
	rows := [][]gauss.Real{
		{1, 2, 3},
		{2, 4, 6}, // redundant: 2 * row 0
	}
	m, err := gauss.NewMatrix(rows)
	if err != nil {
		t.Fatalf("new matrix: %v", err)
	}
	isZero := gauss.DefaultZeroTest[gauss.Real]()
	if err := gauss.Reduce(m, gauss.ArgmaxAbsPivot, isZero); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if m.Rows() != 1 {
		t.Fatalf("redundant row should have been deleted, got %d rows", m.Rows())
	}
}

func TestReduceOverCoefficientQ(t *testing.T) {
	q := func(n int64) field.Coefficient {
		c, err := field.NewCoefficientQ(n, 1)
		if err != nil {
			t.Fatalf("q: %v", err)
		}
		return c
	}
	rows := [][]field.Coefficient{
		{q(1), q(1), q(3)},
		{q(1), q(-1), q(1)},
	}
	m, err := gauss.NewMatrix(rows)
	if err != nil {
		t.Fatalf("new matrix: %v", err)
	}
	isZero := gauss.DefaultZeroTest[field.Coefficient]()
	pivot := gauss.FirstNonZeroPivot(isZero)
	if err := gauss.Reduce(m, pivot, isZero); err != nil {
		t.Fatalf("reduce: %v", err)
	}
	if m.Rows() != 2 {
		t.Fatalf("expected 2 rows, got %d", m.Rows())
	}
	if m.Row(0)[2].String() != "2" || m.Row(1)[2].String() != "1" {
		t.Fatalf("want x=2,y=1 over Q, got %s %s", m.Row(0)[2], m.Row(1)[2])
	}
}
