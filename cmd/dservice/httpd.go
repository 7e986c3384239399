package main

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"log"
	"net/http"

	"github.com/Comcast/dervish/tools"
)

// HTTPServer starts an HTTP server that exposes the catalog.
//
//	GET  /catalog       the catalog manifest (JSON)
//	GET  /catalog.html  the catalog rendered as HTML
//	POST /api           a DOp (JSON); the processed op is returned
//
// This method blocks.
func (s *Service) HTTPServer(ctx context.Context, port string) error {

	writeJSON := func(w http.ResponseWriter, x interface{}) {
		js, err := json.Marshal(x)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(js)
		w.Write([]byte("\n"))
	}

	http.HandleFunc("/catalog", func(w http.ResponseWriter, r *http.Request) {
		entries, err := tools.Manifest(s.catalog)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, entries)
	})

	http.HandleFunc("/catalog.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tools.RenderCatalogPage(s.catalog, w, "catalog", nil); err != nil {
			log.Printf("RenderCatalogPage error %v", err)
		}
	})

	http.HandleFunc("/api", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST an operation", http.StatusMethodNotAllowed)
			return
		}

		bs, err := ioutil.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var op DOp
		if err := json.Unmarshal(bs, &op); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		// The op carries any processing error in its err field.
		op.Do(r.Context(), s)

		writeJSON(w, &op)
	})

	log.Printf("Service.HTTPServer listening on %s", port)

	return http.ListenAndServe(port, nil)
}
