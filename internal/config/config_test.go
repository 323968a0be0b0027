package config

import (
	"testing"
)

func TestLoad(t *testing.T) {
	args := []string{
		"-oracle", "/usr/bin/M2",
		"-workspace", "/tmp/polyjam-work",
		"-output", "/tmp/polyjam-out",
		"-solver", "TwoView",
		"-params", "f1, f2,f3",
		"-visualize",
		"problem.txt",
	}
	c, err := Load(args)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if c.OracleCommand != "/usr/bin/M2" {
		t.Errorf("oracle command = %q", c.OracleCommand)
	}
	if c.SolverName != "TwoView" {
		t.Errorf("solver name = %q", c.SolverName)
	}
	want := []string{"f1", "f2", "f3"}
	if len(c.Parameters) != len(want) {
		t.Fatalf("parameters = %v", c.Parameters)
	}
	for i, p := range want {
		if c.Parameters[i] != p {
			t.Errorf("parameters[%d] = %q, want %q", i, c.Parameters[i], p)
		}
	}
	if !c.Visualize {
		t.Errorf("visualize = false")
	}
	if c.ProblemFile != "problem.txt" {
		t.Errorf("problem file = %q", c.ProblemFile)
	}
}

func TestLoadMissingProblemFile(t *testing.T) {
	args := []string{
		"-oracle", "/usr/bin/M2",
		"-workspace", "/tmp/polyjam-work",
		"-output", "/tmp/polyjam-out",
		"-solver", "TwoView",
		"-params", "f1",
	}
	if _, err := Load(args); err == nil {
		t.Fatalf("expected error for missing problem file argument")
	}
}

func TestLoadMissingOracle(t *testing.T) {
	args := []string{
		"-workspace", "/tmp/polyjam-work",
		"-output", "/tmp/polyjam-out",
		"-solver", "TwoView",
		"-params", "f1",
		"problem.txt",
	}
	if _, err := Load(args); err == nil {
		t.Fatalf("expected error for missing oracle command")
	}
}

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Setenv(oracleEnv, "/usr/bin/M2")
	t.Setenv(workspaceEnv, "/tmp/polyjam-work")
	t.Setenv(outputEnv, "/tmp/polyjam-out")

	args := []string{"-solver", "TwoView", "-params", "f1", "problem.txt"}
	c, err := Load(args)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if c.OracleCommand != "/usr/bin/M2" || c.Workspace != "/tmp/polyjam-work" || c.OutputDir != "/tmp/polyjam-out" {
		t.Errorf("env defaults not applied: %+v", c)
	}
}
