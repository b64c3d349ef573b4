package molfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/autocorr/gadex/core"
)

// ErrSyntax indicates a malformed data file: a missing record, a field that
// does not parse, or an index out of range. The wrapping error carries the
// offending line number.
var ErrSyntax = errors.New("molfile: malformed data file")

// Collision partner codes as assigned by the data format.
var partnerNames = map[int]string{
	1: "H2",
	2: "p-H2",
	3: "o-H2",
	4: "e-",
	5: "H",
	6: "He",
	7: "H+",
}

// ReadFile parses the molecular data file at path.
func ReadFile(path string) (*core.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("molfile: %w", err)
	}
	defer f.Close()

	mol, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mol, nil
}

// Read parses a molecular data file from r and returns the validated
// molecule.
func Read(r io.Reader) (*core.Molecule, error) {
	p := &parser{sc: bufio.NewScanner(r)}
	mol, err := p.molecule()
	if err != nil {
		return nil, err
	}
	if err := mol.Validate(); err != nil {
		return nil, fmt.Errorf("line %d: %v: %w", p.lineNo, err, ErrSyntax)
	}

	return mol, nil
}

// parser consumes data records in file order, skipping "!" comment lines.
type parser struct {
	sc     *bufio.Scanner
	lineNo int
}

// next returns the next non-comment, non-blank line.
func (p *parser) next() (string, error) {
	for p.sc.Scan() {
		p.lineNo++
		line := strings.TrimSpace(p.sc.Text())
		if line == "" || strings.HasPrefix(line, "!") {
			continue
		}

		return line, nil
	}
	if err := p.sc.Err(); err != nil {
		return "", fmt.Errorf("molfile: line %d: %w", p.lineNo, err)
	}

	return "", fmt.Errorf("molfile: line %d: unexpected end of file: %w", p.lineNo, ErrSyntax)
}

func (p *parser) errf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	return fmt.Errorf("molfile: line %d: %s: %w", p.lineNo, msg, ErrSyntax)
}

func (p *parser) intLine() (int, error) {
	line, err := p.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.Fields(line)[0])
	if err != nil {
		return 0, p.errf("expected integer, got %q", line)
	}

	return n, nil
}

func (p *parser) floatLine() (float64, error) {
	line, err := p.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.Fields(line)[0], 64)
	if err != nil {
		return 0, p.errf("expected number, got %q", line)
	}

	return v, nil
}

func (p *parser) molecule() (*core.Molecule, error) {
	name, err := p.next()
	if err != nil {
		return nil, err
	}
	weight, err := p.floatLine()
	if err != nil {
		return nil, err
	}
	mol := &core.Molecule{Name: name, Weight: weight}

	if err := p.levels(mol); err != nil {
		return nil, err
	}
	if err := p.transitions(mol); err != nil {
		return nil, err
	}
	if err := p.partners(mol); err != nil {
		return nil, err
	}

	return mol, nil
}

func (p *parser) levels(mol *core.Molecule) error {
	nlev, err := p.intLine()
	if err != nil {
		return err
	}
	if nlev < 2 {
		return p.errf("need at least 2 levels, got %d", nlev)
	}

	mol.Levels = make([]core.Level, 0, nlev)
	for i := 0; i < nlev; i++ {
		line, err := p.next()
		if err != nil {
			return err
		}
		f := strings.Fields(line)
		if len(f) < 3 {
			return p.errf("level record needs index, energy and weight, got %q", line)
		}
		energy, err1 := strconv.ParseFloat(f[1], 64)
		wt, err2 := strconv.ParseFloat(f[2], 64)
		if err1 != nil || err2 != nil {
			return p.errf("bad level record %q", line)
		}
		label := ""
		if len(f) > 3 {
			label = strings.Join(f[3:], "_")
		}
		mol.Levels = append(mol.Levels, core.Level{Energy: energy, Weight: wt, Label: label})
	}

	return nil
}

func (p *parser) transitions(mol *core.Molecule) error {
	nline, err := p.intLine()
	if err != nil {
		return err
	}
	if nline < 1 {
		return p.errf("need at least 1 radiative transition, got %d", nline)
	}

	nlev := len(mol.Levels)
	mol.Lines = make([]core.Transition, 0, nline)
	for i := 0; i < nline; i++ {
		line, err := p.next()
		if err != nil {
			return err
		}
		f := strings.Fields(line)
		if len(f) < 6 {
			return p.errf("transition record needs 6 fields, got %q", line)
		}
		up, err1 := strconv.Atoi(f[1])
		lo, err2 := strconv.Atoi(f[2])
		aul, err3 := strconv.ParseFloat(f[3], 64)
		freq, err4 := strconv.ParseFloat(f[4], 64)
		eup, err5 := strconv.ParseFloat(f[5], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
			return p.errf("bad transition record %q", line)
		}
		if up < 1 || up > nlev || lo < 1 || lo > nlev {
			return p.errf("transition %d references level outside 1..%d", i+1, nlev)
		}
		up--
		lo--

		// The transition energy comes from the level energies, not from
		// the tabulated frequency, so it stays consistent with the
		// detailed-balance factors computed on the same energies.
		mol.Lines = append(mol.Lines, core.Transition{
			Upper: up,
			Lower: lo,
			Aul:   aul,
			Freq:  freq,
			Eup:   eup,
			Xnu:   mol.Levels[up].Energy - mol.Levels[lo].Energy,
		})
	}

	return nil
}

func (p *parser) partners(mol *core.Molecule) error {
	npart, err := p.intLine()
	if err != nil {
		return err
	}
	if npart < 1 {
		return p.errf("need at least 1 collision partner, got %d", npart)
	}

	nlev := len(mol.Levels)
	for ip := 0; ip < npart; ip++ {
		head, err := p.next()
		if err != nil {
			return err
		}
		code, err := strconv.Atoi(strings.Fields(head)[0])
		if err != nil {
			return p.errf("partner header needs a leading code, got %q", head)
		}
		name, ok := partnerNames[code]
		if !ok {
			return p.errf("unknown collision partner code %d", code)
		}

		ntrans, err := p.intLine()
		if err != nil {
			return err
		}
		ntemp, err := p.intLine()
		if err != nil {
			return err
		}
		if ntrans < 1 || ntemp < 1 {
			return p.errf("partner %s declares %d transitions over %d temperatures", name, ntrans, ntemp)
		}

		tline, err := p.next()
		if err != nil {
			return err
		}
		tf := strings.Fields(tline)
		if len(tf) != ntemp {
			return p.errf("expected %d grid temperatures, got %d", ntemp, len(tf))
		}
		part := core.CollisionPartner{
			Name:  name,
			Temps: make([]float64, ntemp),
		}
		for i, s := range tf {
			if part.Temps[i], err = strconv.ParseFloat(s, 64); err != nil {
				return p.errf("bad grid temperature %q", s)
			}
		}

		part.Upper = make([]int, 0, ntrans)
		part.Lower = make([]int, 0, ntrans)
		part.Rates = make([][]float64, 0, ntrans)
		for i := 0; i < ntrans; i++ {
			line, err := p.next()
			if err != nil {
				return err
			}
			f := strings.Fields(line)
			if len(f) < 3+ntemp {
				return p.errf("collision record needs %d rate fields, got %q", ntemp, line)
			}
			up, err1 := strconv.Atoi(f[1])
			lo, err2 := strconv.Atoi(f[2])
			if err1 != nil || err2 != nil {
				return p.errf("bad collision record %q", line)
			}
			if up < 1 || up > nlev || lo < 1 || lo > nlev {
				return p.errf("collision transition %d references level outside 1..%d", i+1, nlev)
			}
			rates := make([]float64, ntemp)
			for j := 0; j < ntemp; j++ {
				if rates[j], err = strconv.ParseFloat(f[3+j], 64); err != nil {
					return p.errf("bad rate coefficient %q", f[3+j])
				}
			}
			part.Upper = append(part.Upper, up-1)
			part.Lower = append(part.Lower, lo-1)
			part.Rates = append(part.Rates, rates)
		}

		mol.Partners = append(mol.Partners, part)
	}

	return nil
}
