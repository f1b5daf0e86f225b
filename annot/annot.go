/*
 * annot.go, part of foldvis.
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

package annot

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/rmera/foldvis"
)

//Residue is a ready-to-serialize container for the identity of a residue.
type Residue struct {
	Chain string
	ID    int
	ICode string `json:",omitempty"`
	Name  string
	Code  string //one-letter code
}

//Value is a float64 which serializes NaN and infinities as null.
type Value float64

func (V Value) MarshalJSON() ([]byte, error) {
	f := float64(V)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (V *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*V = Value(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*V = Value(f)
	return nil
}

//Column is a named set of per-residue values.
type Column struct {
	Name   string
	Values []Value
}

//ColorColumn is a named set of per-residue colors, as "#rrggbb" strings.
type ColorColumn struct {
	Name   string
	Colors []string
}

//Table holds the residues of a molecule and any number of per-residue annotations.
type Table struct {
	Molecule string
	Residues []Residue
	Columns  []Column
	Colors   []ColorColumn `json:",omitempty"`
}

//New returns an empty table for the residues of mol. The annotations already attached to
//mol are added as columns.
func New(mol *foldvis.Molecule) (*Table, *Error) {
	res := mol.Residues()
	t := &Table{Molecule: mol.Name, Residues: make([]Residue, len(res))}
	for i, r := range res {
		code := "X"
		if r.MolName1 != 0 {
			code = string(r.MolName1)
		}
		t.Residues[i] = Residue{Chain: r.Chain, ID: r.MolID, Name: r.MolName, Code: code}
		if r.ICode != 0 && r.ICode != ' ' {
			t.Residues[i].ICode = string(r.ICode)
		}
	}
	for _, l := range mol.Labels() {
		v, _ := mol.Annotation(l)
		if err := t.Add(l, v); err != nil {
			return nil, err
		}
	}
	return t, nil
}

//Len returns the number of residues in the table.
func (T *Table) Len() int {
	return len(T.Residues)
}

//Column returns the values of the column with the given name, or nil if not present.
func (T *Table) Column(name string) []float64 {
	for _, c := range T.Columns {
		if c.Name == name {
			ret := make([]float64, len(c.Values))
			for i, v := range c.Values {
				ret[i] = float64(v)
			}
			return ret
		}
	}
	return nil
}

//Add adds (or replaces) the column name with the given values, one per residue.
func (T *Table) Add(name string, values []float64) *Error {
	if len(values) != T.Len() {
		return NewError("process", "Table.Add", fmt.Errorf("column %s: %w: %d values for %d residues", name, foldvis.ErrLengthMismatch, len(values), T.Len()))
	}
	c := Column{Name: name, Values: make([]Value, len(values))}
	for i, v := range values {
		c.Values[i] = Value(v)
	}
	for i, old := range T.Columns {
		if old.Name == name {
			T.Columns[i] = c
			return nil
		}
	}
	T.Columns = append(T.Columns, c)
	return nil
}

//AddColors adds (or replaces) the color column name, one "#rrggbb" string per residue.
func (T *Table) AddColors(name string, hex []string) *Error {
	if len(hex) != T.Len() {
		return NewError("process", "Table.AddColors", fmt.Errorf("colors %s: %w: %d values for %d residues", name, foldvis.ErrLengthMismatch, len(hex), T.Len()))
	}
	for _, h := range hex {
		if len(h) != 7 || h[0] != '#' {
			return NewError("process", "Table.AddColors", fmt.Errorf("colors %s: malformed color %q", name, h))
		}
	}
	c := ColorColumn{Name: name, Colors: append([]string(nil), hex...)}
	for i, old := range T.Colors {
		if old.Name == name {
			T.Colors[i] = c
			return nil
		}
	}
	T.Colors = append(T.Colors, c)
	return nil
}

//Encode marshals the table and writes it to out, followed by a newline.
func (T *Table) Encode(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(T); err != nil {
		return NewError("postprocess", "Table.Encode", err)
	}
	return nil
}

//Decode reads one JSON-encoded table from the stream.
func Decode(stream *bufio.Reader) (*Table, *Error) {
	ret := new(Table)
	dec := json.NewDecoder(stream)
	if err := dec.Decode(ret); err != nil {
		return nil, NewError("process", "annot.Decode", err)
	}
	for _, c := range ret.Columns {
		if len(c.Values) != ret.Len() {
			return nil, NewError("process", "annot.Decode", fmt.Errorf("column %s: %w: %d values for %d residues", c.Name, foldvis.ErrLengthMismatch, len(c.Values), ret.Len()))
		}
	}
	return ret, nil
}

//An easily JSON-serializable error type.
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool //If error, was it in parsing the options?
	InProcess     bool
	InPostProcess bool   //was it in preparing the output?
	Function      string //which go function gave the error
	Message       string //the error itself
	err           error
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Unwrap returns the error that caused J, if any.
func (J *Error) Unwrap() error {
	return J.err
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//NewError takes an error and some additional info to create a json-marshal-able error.
//where can be "options", "postprocess" or anything else, for errors during processing.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	jerr.err = err
	return jerr
}
