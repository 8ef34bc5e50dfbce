/*
 * files.go, part of goCrystal.
 *
 * Copyright 2026 The goCrystal Authors
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
 * goCrystal grows out of the goChem library.
 *
 */

package crystal

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//zstd decoders don't implement io.ReadCloser, as their Close method
//returns nothing, so we need this.
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//fileReadCloser closes both the decompressor and the underlying file.
type fileReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (f *fileReadCloser) Close() error {
	var err error
	for _, c := range f.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//TrimCompression returns the name without the .gz, .zst or .zstd extension, if present.
//It is useful to guess the format of a compressed file.
func TrimCompression(name string) string {
	l := strings.ToLower(name)
	for _, ext := range []string{".gz", ".zst", ".zstd"} {
		if strings.HasSuffix(l, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

//OpenFile opens the file for reading. Files ending in .gz are read through a
//gzip decompressor, and files ending in .zst or .zstd through a zstd one.
func OpenFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, NewError("Can't open file", name, "OpenFile", true, err)
	}
	buf := bufio.NewReader(f)
	l := strings.ToLower(name)
	var dec io.ReadCloser
	switch {
	case strings.HasSuffix(l, ".gz"):
		dec, err = gzip.NewReader(buf)
	case strings.HasSuffix(l, ".zst"), strings.HasSuffix(l, ".zstd"):
		var z *zstd.Decoder
		z, err = zstd.NewReader(buf)
		if err == nil {
			dec = zstdReadCloser{z}
		}
	default:
		return &fileReadCloser{Reader: buf, closers: []io.Closer{f}}, nil
	}
	if err != nil {
		f.Close()
		return nil, NewError("Can't decompress file", name, "OpenFile", true, err)
	}
	return &fileReadCloser{Reader: dec, closers: []io.Closer{dec, f}}, nil
}

type fileWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (f *fileWriteCloser) Close() error {
	var err error
	for _, c := range f.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

//CreateFile creates the file for writing, compressing the output with gzip or zstd
//if the name ends in .gz or .zst/.zstd, respectively. The returned object must be
//closed for the data to be flushed.
func CreateFile(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, NewError("Can't create file", name, "CreateFile", true, err)
	}
	l := strings.ToLower(name)
	var enc io.WriteCloser
	switch {
	case strings.HasSuffix(l, ".gz"):
		enc = gzip.NewWriter(f)
	case strings.HasSuffix(l, ".zst"), strings.HasSuffix(l, ".zstd"):
		enc, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, NewError("Can't create compressor", name, "CreateFile", true, err)
		}
	default:
		return f, nil
	}
	return &fileWriteCloser{Writer: enc, closers: []io.Closer{enc, f}}, nil
}
