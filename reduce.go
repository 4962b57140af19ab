package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// An Operation folds parsed input values into a single result.
type Operation struct {
	Name     string
	Identity float64
	Combine  func(acc, v float64) float64

	// seedFirst starts the fold from the first parsed value instead of
	// the identity. Subtraction and division are not commutative;
	// seeding them with the identity would negate or invert the first
	// input.
	seedFirst bool
}

var (
	OpSum = Operation{Name: "sum", Identity: 0, Combine: func(acc, v float64) float64 { return acc + v }}
	OpSub = Operation{Name: "sub", Identity: 0, Combine: func(acc, v float64) float64 { return acc - v }, seedFirst: true}
	OpMul = Operation{Name: "mul", Identity: 1, Combine: func(acc, v float64) float64 { return acc * v }}
	OpDiv = Operation{Name: "div", Identity: 1, Combine: func(acc, v float64) float64 { return acc / v }, seedFirst: true}
)

// Reducer folds one Operation over newline-delimited numbers. Values
// are float64, so integral inputs are exact up to 2^53 and anything
// past that follows IEEE-754.
type Reducer struct {
	Op            Operation
	Silent        bool
	Ignore        int
	IdentityStart bool
	Logger        *slog.Logger
}

// Run reads in to end-of-stream and returns the folded result. Lines
// are whitespace-trimmed; blank lines anywhere are skipped. A non-blank
// line that does not parse as a number fails the whole run, unless
// Silent is set, in which case it contributes the operation's identity.
// Zero parsed values yield the identity.
func (r Reducer) Run(in io.Reader) (float64, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	acc := r.Op.Identity
	seeded := !r.Op.seedFirst || r.IdentityStart

	scanner := bufio.NewScanner(in)

	var lineno int
	for scanner.Scan() {
		lineno++

		if lineno <= r.Ignore {
			logger.Debug("ignoring line", "line", lineno)
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			if !r.Silent {
				return 0, fmt.Errorf("line# %v: %q: %w", lineno, line, err)
			}

			logger.Warn("unparseable line, using identity", "line", lineno, "content", line)
			v = r.Op.Identity
		}

		if !seeded {
			acc = v
			seeded = true
			continue
		}

		acc = r.Op.Combine(acc, v)
	}

	if err := scanner.Err(); err != nil {
		return 0, err
	}

	return acc, nil
}
