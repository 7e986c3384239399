package main

import (
	"context"
	"fmt"
	"log"

	. "github.com/Comcast/dervish/util/testutil"
)

// DOp is a Derivation service Operation.
//
// Only one of List, Doc, Eval, or Define should have value.
type DOp struct {
	// List asks for the cataloged derivation names.
	List *ListOp `json:"list,omitempty" yaml:",omitempty"`

	// Doc asks for a derivation's documentation.
	Doc *DocOp `json:"doc,omitempty" yaml:",omitempty"`

	// Eval evaluates a cataloged derivation.
	Eval *EvalOp `json:"eval,omitempty" yaml:",omitempty"`

	// Define catalogs a new derivation.
	Define *DefineOp `json:"define,omitempty" yaml:",omitempty"`

	// Error will hold an error (if any) that results from
	// processing this operation.
	Error error `json:"-" yaml:"-"`

	// Err will hold a string representation of an error (if any)
	// that results from processing this operation.
	Err string `json:"err,omitempty" yaml:",omitempty"`
}

// erred is a utility function to return values to assign to operation
// Error and Err fields.
func erred(err error) (error, string) {
	if err == nil {
		return nil, ""
	}
	return err, err.Error()
}

func (o *DOp) wrapForFirehose(tag string) map[string]*DOp {
	return map[string]*DOp{
		tag: o,
	}
}

func (o *DOp) Do(ctx context.Context, s *Service) error {

	var err error
	if o.List != nil {
		err = o.List.Do(ctx, s)
	} else if o.Doc != nil {
		err = o.Doc.Do(ctx, s)
	} else if o.Eval != nil {
		err = o.Eval.Do(ctx, s)
	} else if o.Define != nil {
		err = o.Define.Do(ctx, s)
	} else {
		err = fmt.Errorf("not implemented: %s", JS(o))
	}

	if err != nil && o.Error == nil {
		o.Error, o.Err = erred(err)
	}

	if s.firehose != nil {
		select {
		case s.firehose <- o.wrapForFirehose("op"):
		default:
			log.Printf("s.firehose blocked")
		}
	}

	return o.Error
}

type ListOp struct {
	Names []string `json:"names,omitempty" yaml:",omitempty"`
}

func (o *ListOp) Do(ctx context.Context, s *Service) error {
	o.Names = s.catalog.Names()
	return nil
}

type DocOp struct {
	Name string `json:"name"`
	Doc  string `json:"text,omitempty" yaml:",omitempty"`
}

func (o *DocOp) Do(ctx context.Context, s *Service) error {
	e, err := s.catalog.Get(o.Name)
	if err != nil {
		return err
	}
	o.Doc = e.Doc
	return nil
}

type EvalOp struct {
	Name   string      `json:"name"`
	Input  interface{} `json:"input,omitempty" yaml:",omitempty"`
	Result interface{} `json:"result,omitempty" yaml:",omitempty"`
}

func (o *EvalOp) Do(ctx context.Context, s *Service) error {
	v, err := s.catalog.Eval(o.Name, o.Input)
	if err != nil {
		return err
	}
	o.Result = v
	return nil
}

type DefineOp struct {
	Name string `json:"name"`
	Doc  string `json:"doc,omitempty" yaml:",omitempty"`

	// Source is ECMAScript for a function body that sees the
	// input as _.args[0]: either a string of code or {"code":...,
	// "requires":...}.
	Source interface{} `json:"source"`

	// MayDefer reports whether the cataloged derivation can
	// defer.
	MayDefer bool `json:"mayDefer" yaml:",omitempty"`
}

func (o *DefineOp) Do(ctx context.Context, s *Service) error {
	d, err := s.Define(ctx, o.Name, o.Doc, o.Source)
	if err != nil {
		return err
	}
	o.MayDefer = d.MayDefer()
	return nil
}
