// Copyright 2021. Silvano DAL ZILIO.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

package bdd

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Stats returns a textual summary of the node table, of the garbage
// collections that occurred so far and, in debug builds, of the caches.
func (b *BDD) Stats() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Varnum:     %d\n", b.varnum)
	fmt.Fprintf(&sb, "Allocated:  %d\n", len(b.nodes))
	fmt.Fprintf(&sb, "Produced:   %d\n", b.produced)
	r := (float64(b.freenum) / float64(len(b.nodes))) * 100
	fmt.Fprintf(&sb, "Free:       %d  (%.3g %%)\n", b.freenum, r)
	fmt.Fprintf(&sb, "Used:       %d  (%.3g %%)\n", len(b.nodes)-b.freenum, (100.0 - r))
	fmt.Fprintf(&sb, "# of GC:    %d\n", len(b.gcstat.history))
	allocated := int(b.gcstat.setfinalizers)
	reclaimed := int(b.gcstat.calledfinalizers)
	for _, g := range b.gcstat.history {
		allocated += g.setfinalizers
		reclaimed += g.calledfinalizers
	}
	fmt.Fprintf(&sb, "Ext. refs:  %d\n", allocated)
	fmt.Fprintf(&sb, "Reclaimed:  %d", reclaimed)
	if _DEBUG {
		fmt.Fprintf(&sb, "\n%s", b.cacheStat)
	}
	return sb.String()
}

// Print returns a one-line description of node n.
func (b *BDD) Print(n Node) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case n == nil:
		return "Error (nil node)"
	case *n == 0:
		return "False"
	case *n == 1:
		return "True"
	case *n < 0 || *n >= len(b.nodes):
		return fmt.Sprintf("Error (%d not a valid index)", *n)
	case b.nodes[*n].low == -1:
		return fmt.Sprintf("Error (node %d undefined)", *n)
	}
	return fmt.Sprintf("(%d[%d] ? %d : %d)", *n, b.nodes[*n].level, b.nodes[*n].low, b.nodes[*n].high)
}

// Dot writes a graph-like description of the BDD with root n using the
// GraphViz DOT format. Arcs going to the constant False are not drawn.
func (b *BDD) Dot(w io.Writer, n Node) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.checkptr(n); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	b.markcount(*n)
	nodes := []int{}
	for i := 2; i < len(b.nodes); i++ {
		if b.nodes[i].low != -1 && b.ismarked(i) {
			b.unmarknode(i)
			nodes = append(nodes, i)
		}
	}
	sort.Ints(nodes)
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, "1 [shape=box, label=\"1\", style=filled, shape=box, height=0.3, width=0.3];")
	for _, v := range nodes {
		fmt.Fprintf(bw, "%d %s\n", v, dotlabel(v, b.nodes[v].level))
		if b.nodes[v].low != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", v, b.nodes[v].low)
		}
		if b.nodes[v].high != 0 {
			fmt.Fprintf(bw, "%d -> %d [style=filled];\n", v, b.nodes[v].high)
		}
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(a int, level int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, level, a)
}
