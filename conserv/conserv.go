/*
 * conserv.go, part of foldvis.
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

package conserv

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Metric scores one alignment column.
type Metric func(column []byte) (float64, error)

var metrics = map[string]Metric{
	"identity": MeanPairwiseSimilarity,
	"entropy":  func(c []byte) (float64, error) { return Entropy(c, 0) },
	"entropy2": func(c []byte) (float64, error) { return Entropy(c, 2) },
}

// ParseMetric returns the metric with the given name: "identity" (mean pairwise identity),
// "entropy" (Shannon entropy, natural logarithm) or "entropy2" (Shannon entropy, in bits).
func ParseMetric(name string) (Metric, error) {
	m, ok := metrics[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("conserv.ParseMetric: %q: %w", name, ErrUnknownMetric)
	}
	return m, nil
}

func round(f float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(f*p) / p
}

// MeanPairwiseSimilarity returns the fraction of identical pairs among all the unordered pairs of
// residues in column, rounded to 4 decimals. This is the "mean pairwise identity over all pairs
// in the column" reported as "Identity" by Geneious. Gaps are compared like any other character.
// At least 2 residues are needed.
func MeanPairwiseSimilarity(column []byte) (float64, error) {
	n := len(column)
	if n < 2 {
		return 0, fmt.Errorf("conserv.MeanPairwiseSimilarity: %d residues: %w", n, ErrTooFewResidues)
	}
	var counts [256]int
	for _, c := range column {
		counts[c]++
	}
	var same int
	for _, k := range counts {
		same += k * (k - 1) / 2
	}
	pairs := n * (n - 1) / 2
	return round(float64(same)/float64(pairs), 4), nil
}

// Entropy returns the Shannon entropy of the distribution of characters in column, with logarithms
// in the given base (natural logarithms if base <= 0). Columns with 1 or less residues, or with only
// one kind of residue, have an entropy of 0.
func Entropy(column []byte, base float64) (float64, error) {
	n := len(column)
	if n <= 1 {
		return 0, nil
	}
	var counts [256]int
	for _, c := range column {
		counts[c]++
	}
	p := make([]float64, 0, 8)
	for _, k := range counts {
		if k > 0 {
			p = append(p, float64(k)/float64(n))
		}
	}
	if len(p) <= 1 {
		return 0, nil
	}
	ent := stat.Entropy(p)
	if base > 0 {
		ent /= math.Log(base)
	}
	return ent, nil
}

// LoadConserved scores, with metric, every column of msa where the reference sequence has no gap,
// in column order. The reference is the record named ref (see MSA.Index) or, if ref is empty, the first
// record. If the reference is not in the alignment, an error is returned. A nil metric means
// MeanPairwiseSimilarity.
func LoadConserved(msa *MSA, ref string, metric Metric) ([]float64, error) {
	if err := msa.Check(); err != nil {
		return nil, fmt.Errorf("conserv.LoadConserved: %w", err)
	}
	if metric == nil {
		metric = MeanPairwiseSimilarity
	}
	ix := 0
	if ref != "" {
		ix = msa.Index(ref)
		if ix < 0 {
			return nil, fmt.Errorf("conserv.LoadConserved: %q: %w", ref, ErrReferenceNotFound)
		}
	}
	refseq := msa.Records[ix].Seq
	ret := make([]float64, 0, len(refseq))
	col := make([]byte, len(msa.Records))
	for pos, aa := range refseq {
		if aa == Gap {
			continue
		}
		col = msa.Column(pos, col)
		s, err := metric(col)
		if err != nil {
			return nil, fmt.Errorf("conserv.LoadConserved: column %d: %w", pos, err)
		}
		ret = append(ret, s)
	}
	return ret, nil
}

// LoadConservedFile reads an aligned FASTA file and calls LoadConserved on it.
func LoadConservedFile(name, ref string, metric Metric) ([]float64, error) {
	msa, err := ReadFastaFile(name)
	if err != nil {
		return nil, err
	}
	return LoadConserved(msa, ref, metric)
}

// Ungapped returns the reference sequence, without gaps. Its length is the length of the profile
// returned by LoadConserved for the same reference.
func Ungapped(msa *MSA, ref string) (string, error) {
	ix := 0
	if ref != "" {
		if ix = msa.Index(ref); ix < 0 {
			return "", fmt.Errorf("conserv.Ungapped: %q: %w", ref, ErrReferenceNotFound)
		}
	}
	return strings.ReplaceAll(string(msa.Records[ix].Seq), string(Gap), ""), nil
}
