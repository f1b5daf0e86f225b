/*
 * zio.go, part of foldvis.
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

//Package zio opens plain or compressed (gzip, zstd) input files transparently.
//Compression is detected from the file's first bytes, not from its name.
package zio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

//Format is the compression format of a stream.
type Format int

const (
	Plain Format = iota
	Gzip
	Zstd
)

func (f Format) String() string {
	switch f {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	}
	return "plain"
}

//ReadCloser is a decompressing reader which closes the underlying file, if any.
type ReadCloser struct {
	io.Reader
	Format Format
	closers []func() error
}

//Close closes the decompressor and the underlying file.
func (R *ReadCloser) Close() error {
	var err error
	for i := len(R.closers) - 1; i >= 0; i-- {
		if e := R.closers[i](); e != nil && err == nil {
			err = e
		}
	}
	R.closers = nil
	return err
}

//Detect returns the compression format of the data in br, without consuming it.
func Detect(br *bufio.Reader) Format {
	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	}
	return Plain
}

//NewReader wraps r in a decompressor, if r contains gzip or zstd data.
//Otherwise the returned reader just reads r.
func NewReader(r io.Reader) (*ReadCloser, error) {
	br := bufio.NewReader(r)
	ret := &ReadCloser{Format: Detect(br)}
	switch ret.Format {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zio.NewReader: Couldn't open gzip stream: %w", err)
		}
		ret.Reader = gz
		ret.closers = append(ret.closers, gz.Close)
	case Zstd:
		zs, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("zio.NewReader: Couldn't open zstd stream: %w", err)
		}
		ret.Reader = zs
		ret.closers = append(ret.closers, func() error { zs.Close(); return nil })
	default:
		ret.Reader = br
	}
	return ret, nil
}

//Open opens the named file, decompressing it if needed. The caller must Close the
//returned reader.
func Open(name string) (*ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	ret, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	ret.closers = append([]func() error{f.Close}, ret.closers...)
	return ret, nil
}

//Create creates the named file for writing. If level is larger than 0, the output is
//zstd-compressed with that encoder level (1 to 4, see zstd.EncoderLevel). The caller
//must Close the returned writer.
func Create(name string, level int) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	if level <= 0 {
		return f, nil
	}
	zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.EncoderLevel(level)))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("zio.Create: %w", err)
	}
	return &writeCloser{zw, f}, nil
}

type writeCloser struct {
	*zstd.Encoder
	f *os.File
}

func (W *writeCloser) Close() error {
	err := W.Encoder.Close()
	if err2 := W.f.Close(); err == nil {
		err = err2
	}
	return err
}
