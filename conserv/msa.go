/*
 * msa.go, part of foldvis.
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

package conserv

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rmera/foldvis/internal/zio"
)

// Gap is the character marking a gap in an alignment.
const Gap byte = '-'

var (
	ErrReferenceNotFound = errors.New("reference sequence not found")
	ErrRaggedAlignment   = errors.New("sequences of different lengths")
	ErrEmptyAlignment    = errors.New("empty alignment")
	ErrTooFewResidues    = errors.New("too few residues")
	ErrUnknownMetric     = errors.New("unknown metric")
)

// Record is one named sequence of an alignment.
type Record struct {
	Name string //the whole header line, without the '>'
	Seq  []byte
}

// ID returns the first word of the record's name.
func (R *Record) ID() string {
	f := strings.Fields(R.Name)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// MSA is a multiple sequence alignment. All records have the same length.
type MSA struct {
	Records []*Record
}

// Len returns the number of columns of the alignment.
func (M *MSA) Len() int {
	if len(M.Records) == 0 {
		return 0
	}
	return len(M.Records[0].Seq)
}

// Column returns the characters of all the records at column i, in record order.
// If dst has enough capacity, it is used to store the result.
func (M *MSA) Column(i int, dst ...[]byte) []byte {
	var ret []byte
	if len(dst) > 0 && cap(dst[0]) >= len(M.Records) {
		ret = dst[0][:len(M.Records)]
	} else {
		ret = make([]byte, len(M.Records))
	}
	for j, r := range M.Records {
		ret[j] = r.Seq[i]
	}
	return ret
}

// Index returns the index of the record named name, or -1. An exact match with the whole
// name or with its first word (the ID) is needed.
func (M *MSA) Index(name string) int {
	for i, r := range M.Records {
		if r.Name == name || r.ID() == name {
			return i
		}
	}
	return -1
}

// Check returns an error if the alignment is empty or its records don't all have the same length.
func (M *MSA) Check() error {
	if len(M.Records) == 0 || M.Len() == 0 {
		return ErrEmptyAlignment
	}
	l := M.Len()
	for _, r := range M.Records {
		if len(r.Seq) != l {
			return fmt.Errorf("conserv: record %s has length %d, expected %d: %w", r.ID(), len(r.Seq), l, ErrRaggedAlignment)
		}
	}
	return nil
}

// ReadFasta reads an aligned FASTA stream. Sequences can span several lines. Whitespace
// inside sequences is ignored, and residues are upper-cased.
func ReadFasta(in io.Reader) (*MSA, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 64*1024*1024)
	ret := &MSA{}
	var curr *Record
	var nline int
	for scanner.Scan() {
		nline++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			curr = &Record{Name: strings.TrimSpace(string(line[1:]))}
			ret.Records = append(ret.Records, curr)
			continue
		}
		if curr == nil {
			return nil, fmt.Errorf("conserv.ReadFasta: line %d: sequence data before the first header", nline)
		}
		for _, c := range line {
			if c == ' ' || c == '\t' {
				continue
			}
			if c >= 'a' && c <= 'z' {
				c -= 'a' - 'A'
			}
			curr.Seq = append(curr.Seq, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("conserv.ReadFasta: line %d: %w", nline, err)
	}
	if err := ret.Check(); err != nil {
		return nil, fmt.Errorf("conserv.ReadFasta: %w", err)
	}
	return ret, nil
}

// ReadFastaFile reads an aligned FASTA file, which can be gzip- or zstd-compressed.
func ReadFastaFile(name string) (*MSA, error) {
	f, err := zio.Open(name)
	if err != nil {
		return nil, fmt.Errorf("conserv.ReadFastaFile: %w", err)
	}
	defer f.Close()
	msa, err := ReadFasta(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return msa, nil
}
