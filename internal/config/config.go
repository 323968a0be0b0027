// Package config loads the settings cmd/polyjamgen needs to run one
// generator pass (spec 6): the three environment paths (oracle binary,
// workspace directory, output directory) plus the solver's name,
// parameter signature and visualise flag, read the way the teacher's
// own tests read theirs — flags for invocation options, a trailing
// positional argument for the one required path, no config file.
package config

import (
	"flag"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/polyjam-go/polyjam/field"
)

const (
	oracleEnv    = "POLYJAM_ORACLE"
	workspaceEnv = "POLYJAM_WORKSPACE"
	outputEnv    = "POLYJAM_OUTPUT"
)

// Config holds one generator run's settings.
type Config struct {
	// OracleCommand is the Macaulay2-compatible binary the oracle
	// package invokes, defaulting from POLYJAM_ORACLE.
	OracleCommand string
	// Workspace is the directory oracle.ExecTransport writes its
	// temporary scripts under, defaulting from POLYJAM_WORKSPACE.
	Workspace string
	// OutputDir is the directory the emitted solver source is written
	// to, defaulting from POLYJAM_OUTPUT.
	OutputDir string

	// SolverName becomes the emitted Solve<SolverName> function name.
	SolverName string
	// PackageName is the emitted file's package clause.
	PackageName string
	// Parameters is the emitted function's float64 parameter list, in
	// declaration order, parsed from the comma-separated -params flag.
	Parameters []string
	// Visualize requests that cmd/polyjamgen print intermediate
	// coefficient matrices via cmatrix.CoefficientMatrix.String().
	Visualize bool
	// Characteristic is the prime cmd/polyjamgen samples its random
	// ℤ/pℤ coefficients over (via field.RandomCoefficient).
	Characteristic uint64

	// ProblemFile is the path to the problem description (unknowns,
	// named coefficients, and equations) this run generates a solver
	// for.
	ProblemFile string
}

// Load parses args (excluding the program name, i.e. os.Args[1:]) and
// the three environment paths into a Config. It fails if a required
// path or the trailing problem-file argument is missing.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("polyjamgen", flag.ContinueOnError)

	oracleCommand := fs.String("oracle", os.Getenv(oracleEnv), "Macaulay2-compatible oracle binary (env "+oracleEnv+")")
	workspace := fs.String("workspace", os.Getenv(workspaceEnv), "directory for temporary oracle scripts (env "+workspaceEnv+")")
	outputDir := fs.String("output", os.Getenv(outputEnv), "directory to write the emitted solver source to (env "+outputEnv+")")
	solverName := fs.String("solver", "", "emitted solver name")
	packageName := fs.String("package", "main", "emitted package name")
	params := fs.String("params", "", "comma-separated emitted parameter names, in source declaration order")
	visualize := fs.Bool("visualize", false, "print intermediate coefficient matrices to stderr")
	characteristic := fs.Uint64("characteristic", field.DefaultCharacteristic, "prime characteristic for the random ℤ/pℤ sample")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "config: parse flags")
	}

	c := &Config{
		OracleCommand:  *oracleCommand,
		Workspace:      *workspace,
		OutputDir:      *outputDir,
		SolverName:     *solverName,
		PackageName:    *packageName,
		Visualize:      *visualize,
		Characteristic: *characteristic,
	}
	if *params != "" {
		for _, p := range strings.Split(*params, ",") {
			c.Parameters = append(c.Parameters, strings.TrimSpace(p))
		}
	}

	if fs.NArg() != 1 {
		return nil, errors.Errorf("config: expected exactly one problem file argument, got %d", fs.NArg())
	}
	c.ProblemFile = fs.Arg(0)

	if c.OracleCommand == "" {
		return nil, errors.Errorf("config: oracle binary not set (-oracle or %s)", oracleEnv)
	}
	if c.Workspace == "" {
		return nil, errors.Errorf("config: workspace directory not set (-workspace or %s)", workspaceEnv)
	}
	if c.OutputDir == "" {
		return nil, errors.Errorf("config: output directory not set (-output or %s)", outputEnv)
	}
	if c.SolverName == "" {
		return nil, errors.New("config: -solver is required")
	}
	if len(c.Parameters) == 0 {
		return nil, errors.New("config: -params is required")
	}

	return c, nil
}
