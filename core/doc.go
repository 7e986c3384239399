/* Copyright 2026 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core provides the core gear for declarative derivation
// graphs.  A derivation graph is a tree of Specs: composable,
// immutable descriptions of how to compute a value from a runtime
// input.
//
// The primary type is Spec, and the primary entry point is Input().
// A Spec is a pure function of an evaluation environment that
// produces either a value or a *Deferred (a value that completes
// later).  Every Spec knows, at construction time, whether its
// evaluation can produce a *Deferred (see Spec.MayDefer).  Composing
// combinators use that static flag to decide -- once -- whether to
// route evaluation through deferred-aware plumbing, so purely
// synchronous trees pay no deferred-value overhead.
//
// Specs are built with the combinators in this package: Constant,
// Bind, Map, Call, Resolve, Union, Cases, Conditional, Object, and
// Cache.  Combinator arguments documented as "spec-like" accept raw
// literals (scalars, []interface{} sequences, map[string]interface{}
// records) as well as Specs; literals are lifted recursively by
// EnsureSpec.  Values are JSON-shaped data throughout.
//
// Input(fn) compiles a spec tree into a *Derivation, a callable that
// takes one runtime value and evaluates the whole tree.  A Derivation
// is typically built once and evaluated many times (say, once per
// request).  Evaluation threads an immutable Env through the tree;
// scoping combinators extend the Env non-destructively, so sibling
// subtrees never observe each other's bindings.
//
// Ideally the functions given to Call (and friends) do not block or
// perform any IO.  The engine itself performs no IO, no scheduling,
// and no retries, and it never cancels an evaluation once started.
//
// To use this package, build a Derivation with Input.  Then call its
// Eval (or Run) method with an input value.
//
// See https://github.com/Comcast/dervish for an overview.
package core
