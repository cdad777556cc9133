// Command scenegraph prints the game's declared scene transitions as a
// Graphviz dot graph.
//
//	go run ./cmd/scenegraph | dot -Tsvg > scenes.svg
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/milk9111/save/scene"
	"github.com/milk9111/save/scenes"
)

func main() {
	out := flag.String("o", "", "write to this file instead of stdout")
	flag.Parse()

	reg := scenes.NewRegistry(scenes.Deps{})
	if err := reg.Validate(); err != nil {
		log.Fatal(err)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}
	if err := writeDot(w, reg.Entries()); err != nil {
		log.Fatal(err)
	}
}

func writeDot(w io.Writer, entries []scene.Entry) error {
	var b strings.Builder
	b.WriteString("digraph scenes {\n")
	b.WriteString("\trankdir=LR;\n")
	b.WriteString("\tnode [shape=box, fontname=\"monospace\"];\n")

	var endings []string
	seen := map[string]bool{}
	for _, e := range entries {
		label := e.ID.String()
		if e.Mode.Recovery {
			label += "\\n(recovery)"
		}
		fmt.Fprintf(&b, "\t%q [label=%q];\n", e.ID.String(), label)
		for _, edge := range e.Exits {
			if !edge.Ending.Valid() {
				fmt.Fprintf(&b, "\t%q -> %q [label=%q];\n", e.ID.String(), edge.Scene.String(), edge.Name)
				continue
			}
			node := "ending:" + edge.Ending.String()
			if !seen[node] {
				seen[node] = true
				endings = append(endings, node)
			}
			fmt.Fprintf(&b, "\t%q -> %q [label=%q, style=dashed];\n", e.ID.String(), node, edge.Name)
		}
	}
	for _, node := range endings {
		fmt.Fprintf(&b, "\t%q [shape=doubleoctagon];\n", node)
	}
	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("scenegraph: write: %w", err)
	}
	return nil
}
