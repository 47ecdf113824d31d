package qttt

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/gorgonia/qttt/game"
	"github.com/gorgonia/qttt/game/nxn"
	"github.com/gorgonia/qttt/qtable"
)

type lineNode struct {
	ID     int
	Player game.Player // who is to move
	Move   game.Single // the greedy move, -1 when there is none
	Value  float32
	Status string
	board  []game.Colour
	stride int
}

func (s *lineNode) State() string {
	var buf bytes.Buffer
	for i, c := range s.board {
		if i%s.stride == 0 {
			fmt.Fprint(&buf, "⎢ ")
		}
		fmt.Fprintf(&buf, "%s ", c)
		if (i+1)%s.stride == 0 {
			fmt.Fprint(&buf, "⎥<BR />")
		}
	}
	return buf.String()
}

// ToDot follows greedy play through the table from an empty board, first moving first,
// and renders every visited state as a node of a graphviz graph.
// The line stops at a finished game, at a state the table has never seen, or at a wasted move.
func ToDot(t *qtable.Table, first game.Player) string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	n := sqrt(t.ActionSpace())
	board := nxn.New(n)
	p := first

	var buf bytes.Buffer
	for id := 0; ; id++ {
		node := &lineNode{
			ID:     id,
			Player: p,
			Move:   nxn.NoMove,
			board:  append([]game.Colour(nil), board.Board()...),
			stride: n,
		}
		k := EncodeState(board.Board())
		ended, winner := board.Ended()
		_, seen := t.Lookup(k)
		switch {
		case ended && winner == game.Player(game.None):
			node.Status = "draw"
		case ended:
			node.Status = fmt.Sprintf("%s wins", winner.Mark())
		case !seen:
			node.Status = "unseen"
		default:
			node.Move = t.BestAction(k)
			node.Value = t.Get(k, node.Move)
			node.Status = fmt.Sprintf("%s to move", p.Mark())
		}

		move := game.PlayerMove{Player: p, Single: node.Move}
		if node.Move != nxn.NoMove && !board.Check(move) {
			node.Status = "wasted"
		}

		if err := tmpl.Execute(&buf, node); err != nil {
			panic(err)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		if err := g.AddNode("G", fmt.Sprintf("%d", id), attrs); err != nil {
			panic(err)
		}
		buf.Reset()

		if id > 0 {
			if err := g.AddEdge(fmt.Sprintf("%d", id-1), fmt.Sprintf("%d", id), true, nil); err != nil {
				panic(err)
			}
		}
		if node.Move == nxn.NoMove || node.Status == "wasted" {
			break
		}
		board.Apply(move)
		p = p.Opponent()
	}
	return g.String()
}

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Status</TD><TD>{{.Status}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Value</TD><TD>{{.Value}}</TD></TR>
<TR><TD>State</TD><TD>{{.State}}</TD></TR>
</TABLE>
>
`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}
