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

// Package main is a little command-line utility for working with the
// demo catalog of derivations.
//
//	echo '{"customer":{"tier":"gold"},"items":[{"price":4.5,"qty":2}]}' | dtool eval order-total
//
// Input is YAML (so JSON also works).
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/Comcast/dervish/catalog"
	"github.com/Comcast/dervish/tools"

	"github.com/jsccast/yaml"
)

func main() {

	if len(os.Args) < 2 {
		Usage()
		os.Exit(1)
	}

	c := catalog.Demo()

	switch os.Args[1] {
	case "list":
		for _, name := range c.Names() {
			fmt.Println(name)
		}

	case "doc":
		if len(os.Args) != 3 {
			Usage()
			os.Exit(1)
		}
		e, err := c.Get(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(e.Doc)

	case "manifest":
		if err := tools.WriteManifest(c, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "html":
		if err := tools.RenderCatalogPage(c, os.Stdout, "catalog", nil); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

	case "eval":
		if len(os.Args) != 3 {
			Usage()
			os.Exit(1)
		}

		bs, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		var input interface{}
		if err = yaml.Unmarshal(bs, &input); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		v, err := c.Eval(os.Args[2], input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if bs, err = json.Marshal(&v); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s\n", bs)

	default:
		fmt.Printf("Unknown subcommand \"%s\"\n", os.Args[1])
		Usage()
		os.Exit(1)
	}
}

func Usage() {
	fmt.Printf(`Subcommands:

  list           print the cataloged derivation names
  doc NAME       print a derivation's documentation
  manifest       print the catalog manifest as YAML
  html           render the catalog as an HTML page
  eval NAME      evaluate a derivation on YAML (or JSON) from stdin

`)
}
