package main

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/autocorr/gadex/core"
	"github.com/autocorr/gadex/grid"
)

// runFile is the top-level schema of a gadex run file. At least one of the
// run and sweep blocks must be present; when both are, the single run
// executes first and the sweep after it.
//
//	molfile  = "hco+.dat"
//	geometry = "sphere"
//
//	run {
//	  partner = "H2"
//	  density = 1e4
//	  tkin    = 20.0
//	  tbg     = 2.725
//	  cdmol   = 1e13
//	  deltav  = 1.0
//	}
type runFile struct {
	Molfile  string      `hcl:"molfile"`
	Geometry string      `hcl:"geometry"`
	Run      *runBlock   `hcl:"run,block"`
	Sweep    *sweepBlock `hcl:"sweep,block"`
}

type runBlock struct {
	Partner string  `hcl:"partner"`
	Density float64 `hcl:"density"`
	Tkin    float64 `hcl:"tkin"`
	Tbg     float64 `hcl:"tbg"`
	Cdmol   float64 `hcl:"cdmol"`
	DeltaV  float64 `hcl:"deltav"`
	FreqMin float64 `hcl:"fmin,optional"`
	FreqMax float64 `hcl:"fmax,optional"`
}

type sweepBlock struct {
	Partner string  `hcl:"partner"`
	Tbg     float64 `hcl:"tbg"`
	DeltaV  float64 `hcl:"deltav"`

	Density *axisBlock `hcl:"density,block"`
	Tkin    *axisBlock `hcl:"tkin,block"`
	Cdmol   *axisBlock `hcl:"cdmol,block"`

	// Chart is the HTML output path; Line selects the plotted transition.
	Chart string `hcl:"chart,optional"`
	Line  int    `hcl:"line,optional"`
}

type axisBlock struct {
	Min   float64 `hcl:"min"`
	Max   float64 `hcl:"max,optional"`
	Steps int     `hcl:"steps,optional"`
	Log   bool    `hcl:"log,optional"`
}

func (a *axisBlock) axis() grid.Axis {
	if a == nil {
		return grid.Axis{}
	}
	if a.Steps == 0 {
		a.Steps = 1
	}

	return grid.Axis{Min: a.Min, Max: a.Max, Steps: a.Steps, Log: a.Log}
}

// loadRunFile parses and decodes the run file at path.
func loadRunFile(path string) (*runFile, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse %s: %s", path, diags.Error())
	}

	return decodeRunFile(path, file.Body)
}

func decodeRunFile(path string, body hcl.Body) (*runFile, error) {
	var rf runFile
	diags := gohcl.DecodeBody(body, nil, &rf)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode %s: %s", path, diags.Error())
	}
	if rf.Run == nil && rf.Sweep == nil {
		return nil, fmt.Errorf("%s: needs a run or sweep block", path)
	}
	if _, err := core.ParseGeometry(rf.Geometry); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &rf, nil
}
