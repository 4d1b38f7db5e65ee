// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tables

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/casacore/casabind/casa"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

const (
	headerFile    = "table.dat"
	formatVersion = 1
)

var (
	enc         *zstd.Encoder
	dec         *zstd.Decoder
	initEncoder sync.Once
	initDecoder sync.Once
)

func getencoder() *zstd.Encoder {
	initEncoder.Do(func() {
		enc, _ = zstd.NewWriter(nil, zstd.WithZeroFrames(true))
	})
	return enc
}

func getdecoder() *zstd.Decoder {
	initDecoder.Do(func() {
		dec, _ = zstd.NewReader(nil)
	})
	return dec
}

func columnFile(i int) string { return fmt.Sprintf("c%04d.col", i) }

func ioError(op, name string, err error) error {
	return xerrors.Errorf("%w: %s %s: %v", casa.ErrIO, op, name, err)
}

// snapshot is the content of a table as written to disk.
type snapshot struct {
	desc     *TableDesc
	cols     map[string]columnStore
	nrow     int
	keywords *record
}

// snapshot references the live state of c; callers hold c.mu.
func (c *tableCore) snapshot() *snapshot {
	return &snapshot{desc: c.desc, cols: c.cols, nrow: c.nrow, keywords: c.keywords}
}

func (s *snapshot) clone() *snapshot {
	out := &snapshot{
		desc:     s.desc.clone(),
		cols:     make(map[string]columnStore, len(s.cols)),
		nrow:     s.nrow,
		keywords: s.keywords.clone(),
	}
	for name, st := range s.cols {
		out.cols[name] = st.clone()
	}
	return out
}

type columnHeader struct {
	Desc descJSON `json:"desc"`
	File string   `json:"file"`
}

type tableHeader struct {
	Version  int            `json:"version"`
	Nrow     int            `json:"nrow"`
	Columns  []columnHeader `json:"columns"`
	Keywords *recordJSON    `json:"keywords"`
}

func tableExists(dir string) bool {
	st, err := os.Stat(filepath.Join(dir, headerFile))
	return err == nil && st.Mode().IsRegular()
}

// writeFile replaces path with the compressed data, going through a
// temporary file so readers never see a partial file.
func writeFile(path string, data []byte, fsync bool) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return ioError("create", tmp, err)
	}
	_, err = f.Write(getencoder().EncodeAll(data, nil))
	if err == nil && fsync {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return ioError("write", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return ioError("rename", tmp, err)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ioError("read", path, err)
	}
	data, err := getdecoder().DecodeAll(raw, nil)
	if err != nil {
		return nil, ioError("decompress", path, err)
	}
	return data, nil
}

// createTable writes the empty table a New or Scratch open starts from.
var createTable = func(dir string, s *snapshot) error { return writeTable(dir, s, false) }

// writeTable writes the columns of s concurrently, then the header.
// Column files no longer referenced by the header are removed.
func writeTable(dir string, s *snapshot, fsync bool) error {
	hdr := tableHeader{Version: formatVersion, Nrow: s.nrow}
	kw, err := s.keywords.toJSON()
	if err != nil {
		return err
	}
	hdr.Keywords = kw

	keep := map[string]bool{headerFile: true}
	var g errgroup.Group
	for i, cd := range s.desc.cols {
		dj, err := cd.base.toJSON()
		if err != nil {
			return err
		}
		file := columnFile(i)
		keep[file] = true
		hdr.Columns = append(hdr.Columns, columnHeader{Desc: dj, File: file})

		store := s.cols[cd.Name()]
		path := filepath.Join(dir, file)
		g.Go(func() error {
			data, err := store.encode()
			if err != nil {
				return xerrors.Errorf("column %q: %w", cd.Name(), err)
			}
			return writeFile(path, data, fsync)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	data, err := json.Marshal(&hdr)
	if err != nil {
		return xerrors.Errorf("%w: table header: %v", casa.ErrIO, err)
	}
	if err := writeFile(filepath.Join(dir, headerFile), data, fsync); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ioError("list", dir, err)
	}
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".col") && !keep[name] {
			os.Remove(filepath.Join(dir, name))
		}
	}
	return nil
}

// readTable loads a table directory, decoding the columns concurrently.
func readTable(dir string) (*snapshot, error) {
	data, err := readFile(filepath.Join(dir, headerFile))
	if err != nil {
		return nil, err
	}
	var hdr tableHeader
	if err := json.Unmarshal(data, &hdr); err != nil {
		return nil, xerrors.Errorf("%w: table header %s: %v", casa.ErrIO, dir, err)
	}
	if hdr.Version != formatVersion {
		return nil, xerrors.Errorf("%w: table %s has format version %d", casa.ErrIO, dir, hdr.Version)
	}

	s := &snapshot{
		desc: NewTableDesc(),
		cols: make(map[string]columnStore, len(hdr.Columns)),
		nrow: hdr.Nrow,
	}
	if s.keywords, err = recordFromJSON(hdr.Keywords); err != nil {
		return nil, err
	}

	stores := make([]columnStore, len(hdr.Columns))
	var g errgroup.Group
	for i, ch := range hdr.Columns {
		base, err := ch.Desc.desc()
		if err != nil {
			return nil, err
		}
		if err := s.desc.AddColumn(NewColumnDesc(base)); err != nil {
			return nil, xerrors.Errorf("%w: table %s: %v", casa.ErrIO, dir, err)
		}
		stores[i] = base.newStore(0)
		path := filepath.Join(dir, ch.File)
		g.Go(func() error {
			raw, err := readFile(path)
			if err != nil {
				return err
			}
			if err := stores[i].decode(raw, hdr.Nrow); err != nil {
				return xerrors.Errorf("column %q: %w", ch.Desc.Name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, ch := range hdr.Columns {
		s.cols[ch.Desc.Name] = stores[i]
	}
	return s, nil
}

// DeleteSubTable removes the table referenced by keyword name of parent,
// both the keyword and the table directory. With checkSubTables set the
// sub-table must not itself reference other tables.
func DeleteSubTable(parent *Table, name string, checkSubTables bool) error {
	kws, err := parent.RwKeywordSet()
	if err != nil {
		return err
	}
	id := FieldByName(name)
	sub, err := kws.AsTable(id)
	if err != nil {
		return err
	}
	subName := sub.TableName()
	typ := sub.Type()
	if checkSubTables {
		subKws, err := sub.KeywordSet()
		if err != nil {
			sub.Close()
			return err
		}
		for _, f := range subKws.rec.fields {
			if f.dt == casa.TpTable {
				sub.Close()
				return fmt.Errorf("%w: sub-table %s has sub-table %q", casa.ErrInvalid, subName, f.name)
			}
		}
	}
	sub.Close()
	if err := kws.RemoveField(id); err != nil {
		return err
	}
	if typ != Plain {
		return nil
	}
	if err := os.RemoveAll(subName); err != nil && !errors.Is(err, os.ErrNotExist) {
		return ioError("delete", subName, err)
	}
	return nil
}
