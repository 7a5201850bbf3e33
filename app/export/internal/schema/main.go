// schema writes JSON schema of the export document, to schema.json or to the file given as the first argument.
// "-" prints it to stdout.
package main

import (
	"encoding/json"
	"os"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/joblog/app/export"
)

func main() {
	data, err := json.MarshalIndent(export.Schema(), "", "  ")
	if err != nil {
		log.Fatalf("[ERROR] can't marshal export schema, %v", err)
	}
	data = append(data, '\n')

	dest := "schema.json"
	if len(os.Args) > 1 {
		dest = os.Args[1]
	}
	if dest == "-" {
		if _, err := os.Stdout.Write(data); err != nil {
			log.Fatalf("[ERROR] can't print export schema, %v", err)
		}
		return
	}

	if err := os.WriteFile(dest, data, 0o600); err != nil {
		log.Fatalf("[ERROR] can't write export schema to %s, %v", dest, err)
	}
	log.Printf("[INFO] export schema written to %s", dest)
}
