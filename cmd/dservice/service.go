package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/Comcast/dervish/catalog"
	"github.com/Comcast/dervish/core"
	gi "github.com/Comcast/dervish/interpreters/goja"
	"github.com/Comcast/dervish/storage/bolt"
	"github.com/Comcast/dervish/util"
)

// Service wraps a catalog of derivations with an interpreter for
// defining new ones and optional persistent memoization.
type Service struct {
	catalog *catalog.Catalog
	interp  *gi.Interpreter

	// storage, when not nil, backs memo tables for derivations
	// defined at runtime.
	storage *bolt.Storage

	// firehose, when not nil, receives all processed operations.
	// See WebSockets.
	firehose chan interface{}
}

func NewService(libDir string, storeFile string) (*Service, error) {
	interp := gi.NewInterpreter()
	interp.LibraryProvider = gi.MakeFileLibraryProvider(libDir)

	s := &Service{
		catalog: catalog.Demo(),
		interp:  interp,
	}

	if storeFile != "" {
		st, err := bolt.NewStorage(storeFile)
		if err != nil {
			return nil, err
		}
		if err = st.Open(); err != nil {
			return nil, err
		}
		s.storage = st
	}

	return s, nil
}

func (s *Service) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}

// Define compiles the given ECMAScript source into a Func and
// catalogs a derivation that applies it to the input.
//
// When the service has storage, the derivation's results are memoized
// persistently, keyed by the canonicalized input.
func (s *Service) Define(ctx context.Context, name, doc string, source interface{}) (*core.Derivation, error) {
	fn, err := s.interp.CompileFunc(ctx, source)
	if err != nil {
		return nil, err
	}

	var d *core.Derivation

	if s.storage == nil {
		d = core.Input(func(input core.Spec) interface{} {
			return core.Call(fn, input)
		})
	} else {
		table, err := s.storage.Table(name)
		if err != nil {
			return nil, err
		}

		// Memo keys must be comparable, so we key on the
		// canonical JSON of the input.
		canon := func(args ...interface{}) (interface{}, error) {
			js, err := json.Marshal(&args[0])
			if err != nil {
				return nil, err
			}
			return string(js), nil
		}

		apply := func(args ...interface{}) (interface{}, error) {
			js, is := args[0].(string)
			if !is {
				return nil, fmt.Errorf("bad memo key %#v", args[0])
			}
			var input interface{}
			if err := json.Unmarshal([]byte(js), &input); err != nil {
				return nil, err
			}
			return fn(input)
		}

		d = core.Input(func(input core.Spec) interface{} {
			return core.CacheIn(table, core.Call(canon, input), func(key core.Spec) interface{} {
				return core.Call(apply, key)
			})
		})
	}

	err = s.catalog.Add(&catalog.Entry{
		Name: name,
		Doc:  doc,
		D:    d,
	})
	if err != nil {
		return nil, err
	}

	util.Logf("defined %s (mayDefer=%v)", name, d.MayDefer())

	return d, nil
}

// Listener runs a REPL that reads one operation (as JSON) per line.
func (s *Service) Listener(ctx context.Context, in *bufio.Reader, out io.Writer) error {
	for {
		if _, err := fmt.Fprintf(out, "> "); err != nil {
			return err
		}

		line, err := in.ReadBytes('\n')
		if err != nil {
			return err
		}
		if len(line) <= 1 {
			continue
		}

		var op DOp
		if err := json.Unmarshal(line, &op); err != nil {
			fmt.Fprintf(out, "parse error: %v\n", err)
			continue
		}

		if err := op.Do(ctx, s); err != nil {
			log.Printf("op error %v", err)
		}

		js, err := json.Marshal(&op)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n", js)
	}
}
