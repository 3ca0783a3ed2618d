package grid

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cheynewallace/tabby"
	"github.com/projectdiscovery/analogx/cluster"
	"github.com/projectdiscovery/fasttemplate"
	"github.com/projectdiscovery/gologger"
)

// HeaderTemplate is the header written above each grid by PrettyPrint.
const HeaderTemplate = "# Grid no.: {{number}} - {{attributes}}"

// String renders one text line per row, cells joined by the ratio symbol and
// holes as the hole symbol.
func (g *Grid) String() string {
	var sb strings.Builder
	for i := 0; i < g.rows; i++ {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, s := range g.cells[i] {
			if j > 0 {
				sb.WriteString(cluster.RatioSymbol)
			}
			if s.filled {
				sb.WriteString(s.word)
			} else {
				sb.WriteString(cluster.Hole)
			}
		}
	}
	return sb.String()
}

// Write writes grids separated by a blank line.
func Write(w io.Writer, grids []*Grid) error {
	bw := bufio.NewWriter(w)
	for k, g := range grids {
		if k > 0 {
			if _, err := bw.WriteString("\n"); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(g.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read reads grids written by Write or PrettyPrint. Grids are separated by
// blank lines and comment lines are ignored. A malformed grid is logged and
// skipped.
func Read(r io.Reader) ([]*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		grids []*Grid
		rows  [][]string
		first int
		line  int
	)
	flush := func() {
		if len(rows) == 0 {
			return
		}
		g, err := FromRows(rows)
		if err != nil {
			gologger.Warning().Msgf("line %d: %v", first, err)
		} else {
			grids = append(grids, g)
		}
		rows = nil
	}
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			flush()
			continue
		}
		if strings.HasPrefix(text, cluster.Comment) {
			continue
		}
		if len(rows) == 0 {
			first = line
		}
		rows = append(rows, parseRow(text))
	}
	if err := sc.Err(); err != nil {
		return grids, err
	}
	flush()
	return grids, nil
}

func parseRow(text string) []string {
	cells := strings.Split(text, strings.TrimSpace(cluster.RatioSymbol))
	for j, c := range cells {
		c = strings.TrimSpace(c)
		if c == cluster.Hole {
			c = ""
		}
		cells[j] = c
	}
	return cells
}

// PrettyPrint writes grids as aligned tables, each under a header rendered
// from HeaderTemplate.
func PrettyPrint(w io.Writer, grids []*Grid) error {
	for k, g := range grids {
		header := fasttemplate.ExecuteStringStd(HeaderTemplate, "{{", "}}", map[string]interface{}{
			"number":     strconv.Itoa(k + 1),
			"attributes": g.Attributes().String(),
		})
		if k > 0 {
			header = "\n" + header
		}
		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}
		table := tabby.NewCustom(tabwriter.NewWriter(w, 0, 0, 1, ' ', 0))
		for i := 0; i < g.rows; i++ {
			table.AddLine(prettyRow(g.cells[i])...)
		}
		table.Print()
	}
	return nil
}

func prettyRow(row []slot) []interface{} {
	out := make([]interface{}, 0, 2*len(row))
	for j, s := range row {
		if j > 0 {
			out = append(out, ":")
		}
		if s.filled {
			out = append(out, s.word)
		} else {
			out = append(out, cluster.Hole)
		}
	}
	return out
}
