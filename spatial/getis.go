/*
 * getis.go, part of foldvis.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package spatial

import (
	"math"
	"strings"
)

// StatFunc is the signature shared by the spatial association statistics. w is the neighbor
// sphere of the residue pos (see IsClose) and features holds one value per residue. It returns
// the statistic and its Z-score.
type StatFunc func(w []bool, features []float64, pos int) (G, Z float64, err error)

// Statistic identifies one of the spatial association statistics.
type Statistic int

const (
	StatGi Statistic = iota
	StatGiStar
)

var statistics = map[Statistic]StatFunc{
	StatGi:     Gi,
	StatGiStar: GiStar,
}

var statNames = map[string]Statistic{
	"gi":      StatGi,
	"gi_star": StatGiStar,
	"gistar":  StatGiStar,
	"gi*":     StatGiStar,
}

func (S Statistic) String() string {
	switch S {
	case StatGi:
		return "Gi"
	case StatGiStar:
		return "Gi_star"
	}
	return "unknown"
}

// ParseStatistic returns the Statistic with the given name. Names are case-insensitive;
// "Gi", "Gi_star" and "Gi*" are recognized.
func ParseStatistic(name string) (Statistic, error) {
	s, ok := statNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return -1, newError(ErrUnknownStatistic, -1, "ParseStatistic", "%q", name)
	}
	return s, nil
}

// Func returns the function implementing the statistic.
func (S Statistic) Func() (StatFunc, error) {
	f, ok := statistics[S]
	if !ok {
		return nil, newError(ErrUnknownStatistic, -1, "Statistic.Func", "statistic number %d", int(S))
	}
	return f, nil
}

func checkInput(w []bool, features []float64, pos, minpoints int, caller string) error {
	n := len(w)
	if n != len(features) {
		return newError(ErrLengthMismatch, pos, caller, "%d weights and %d features", n, len(features))
	}
	if pos < 0 || pos >= n {
		return newError(ErrPosOutOfRange, pos, caller, "%d points", n)
	}
	if n < minpoints {
		return newError(ErrTooFewPoints, pos, caller, "%d points, at least %d needed", n, minpoints)
	}
	return nil
}

// zscore standardizes G given its expectation and variance. A variance that is not positive
// is an error.
func zscore(G, E, variance float64, pos int, caller string) (float64, error) {
	if variance < 0 {
		return 0, newError(ErrNegativeVariance, pos, caller, "Var=%g", variance)
	}
	if variance == 0 {
		return 0, newError(ErrZeroVariance, pos, caller, "G=%g, E=%g", G, E)
	}
	return (G - E) / math.Sqrt(variance), nil
}

// Gi calculates the Getis-Ord Gi statistic for the residue pos. The residue pos is excluded
// from both the weights and the features (i != j), which is done without modifying w or features.
// At least 3 points are needed.
func Gi(w []bool, features []float64, pos int) (G, Z float64, err error) {
	if err = checkInput(w, features, pos, 3, "Gi"); err != nil {
		return 0, 0, err
	}
	var scores, total, sq, wi float64
	for i, f := range features {
		if i == pos {
			continue
		}
		total += f
		sq += f * f
		if w[i] {
			scores += f
			wi++
		}
	}
	if total == 0 {
		return 0, 0, newError(ErrZeroTotal, pos, "Gi", "can't calculate G")
	}
	G = scores / total
	n1 := float64(len(w) - 1)
	yi1 := total / n1
	yi2 := sq/n1 - yi1*yi1
	E := wi / n1
	variance := (wi * (n1 - wi) * yi2) / (n1 * n1 * (n1 - 1) * yi1 * yi1)
	Z, err = zscore(G, E, variance, pos, "Gi")
	return G, Z, err
}

// GiStar calculates the Getis-Ord Gi* statistic for the residue pos. The residue pos is included
// in the sums (i == j is allowed). At least 2 points are needed.
func GiStar(w []bool, features []float64, pos int) (G, Z float64, err error) {
	if err = checkInput(w, features, pos, 2, "GiStar"); err != nil {
		return 0, 0, err
	}
	var scores, total, sq, wi float64
	fpos := features[pos]
	for i, f := range features {
		total += f
		//The double sum in table 1 of the original paper just means add x_i to
		//the sum of all the other features.
		sq += (fpos * f) * (fpos * f)
		if w[i] {
			scores += f
			wi++
		}
	}
	if total == 0 {
		return 0, 0, newError(ErrZeroTotal, pos, "GiStar", "can't calculate G")
	}
	G = scores / total
	n := float64(len(w))
	yi1 := total / n
	yi2 := sq/n - yi1*yi1
	E := wi / n
	variance := (wi * (n - wi) * yi2) / (n * n * (n - 1) * yi1 * yi1)
	Z, err = zscore(G, E, variance, pos, "GiStar")
	return G, Z, err
}
