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

// Package main is a demo derivation service.
//
// The service evaluates cataloged derivations on demand over HTTP,
// WebSockets, or MQTT, and it can catalog new derivations defined in
// ECMAScript at runtime.
//
// Warning: This is demo code.  There is no authentication, and the
// define operation runs code that clients send.
package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/Comcast/dervish/util"
)

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.LUTC)
}

func main() {

	var (
		httpPort   = flag.String("h", ":8080", "HTTP service port")
		httpDir    = flag.String("d", "", "optional directory that the HTTP service will serve")
		storeFile  = flag.String("p", "", "optional filename for memo persistence (bbolt)")
		websockets = flag.Bool("w", false, "start WebSockets service (requires HTTP service)")
		mq         = flag.Bool("mq", false, "couple to an MQTT broker (options follow flags)")
		repl       = flag.Bool("r", false, "REPL")
		libDir     = flag.String("i", ".", "directory for interpreter libraries")
		verbose    = flag.Bool("v", false, "verbose logging")
	)

	flag.Parse()

	util.Logging = *verbose

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := NewService(*libDir, *storeFile)
	if err != nil {
		panic(err)
	}
	defer s.Close()

	if *mq {
		mc, _ := NewMQTTCoupling(flag.Args(), s)
		if err := mc.Start(ctx); err != nil {
			panic(err)
		}
		defer mc.Stop(ctx)
	}

	if *repl {
		go func() {
			in := bufio.NewReader(os.Stdin)
			if err := s.Listener(ctx, in, os.Stdout); err != nil {
				log.Printf("REPL: %s", err)
			}
			os.Exit(0)
		}()
	}

	if *websockets {
		if err := s.WebSockets(ctx, *httpPort); err != nil {
			panic(err)
		}
	}

	if *httpDir != "" {
		fs := http.FileServer(http.Dir(*httpDir))
		http.Handle("/f/", http.StripPrefix("/f", fs))
	}

	if err := s.HTTPServer(ctx, *httpPort); err != nil {
		panic(err)
	}

	log.Printf("main terminating")
}
