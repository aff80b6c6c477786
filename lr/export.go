package lr

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// TableAsGraphViz exports a CFSM to the Graphviz Dot format.
func TableAsGraphViz(c *CFSM, w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.items, c.g)))
	}
	for _, s := range c.states {
		for _, e := range s.edges {
			b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n", s.ID, e.to,
				dotEscape(e.label.Name)))
		}
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(items []Item, g *Grammar) string {
	var b strings.Builder
	for k, i := range items {
		if k > 0 {
			b.WriteString("\\l")
		}
		b.WriteString(dotEscape(i.StringWith(g)))
	}
	b.WriteString("\\l")
	return b.String()
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`,
	`<`, `\<`, `>`, `\>`, `\`, `\\`)

func dotEscape(s string) string {
	return dotEscaper.Replace(s)
}

// TableAsHTML exports a parser table in HTML-format. Columns are the grammar
// symbols, rows are the states of the table.
func TableAsHTML(t *Table, w io.Writer) error {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	b.WriteString(fmt.Sprintf("<p>%s: parser table with %d states, %d transitions, %d conflicts</p>\n",
		html.EscapeString(t.g.Name), t.StateCount(), t.edges.ValueCount(), t.conflicts))
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>")
	var symvec []*Symbol
	t.g.EachSymbol(func(A *Symbol) interface{} {
		b.WriteString(fmt.Sprintf("<td>%s</td>", html.EscapeString(A.Name)))
		symvec = append(symvec, A)
		return nil
	})
	b.WriteString("</tr>\n")
	for state := 0; state < t.StateCount(); state++ {
		b.WriteString(fmt.Sprintf("<tr><td>state %d</td>", state))
		for _, A := range symvec {
			cell := t.Actions(state, A)
			if len(cell) == 0 {
				b.WriteString("<td>&nbsp;</td>")
				continue
			}
			entries := make([]string, len(cell))
			for k, a := range cell {
				entries[k] = a.String()
			}
			bg := ""
			if len(cell) > 1 {
				bg = " bgcolor=#ffcccc"
			}
			b.WriteString(fmt.Sprintf("<td%s>%s</td>", bg, strings.Join(entries, "/")))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
