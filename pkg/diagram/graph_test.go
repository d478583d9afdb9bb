package diagram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNode(t *testing.T) {
	g := NewGraph()
	n := g.AddNode(TypeAttacker, 40, 60)

	assert.Equal(t, NodeID(1), n.ID)
	assert.Equal(t, TypeAttacker, n.Type)
	assert.Equal(t, 40.0, n.X)
	assert.Equal(t, 60.0, n.Y)
	assert.Equal(t, NodeWidth, n.Width)
	assert.Equal(t, NodeHeight, n.Height)
	assert.Equal(t, NeutralNodeColor, n.Color)

	second := g.AddNode(TypeDatabase, 0, 0)
	assert.Equal(t, NodeID(2), second.ID)
	assert.Equal(t, 2, g.NodeCount())

	got, err := g.Node(n.ID)
	require.NoError(t, err)
	assert.Same(t, n, got)

	_, err = g.Node(99)
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestConnectDirectionality(t *testing.T) {
	g := NewGraph()
	a := g.AddNode("a", 0, 0)
	b := g.AddNode("b", 200, 0)

	ab, err := g.Connect(a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, DirectionForward, ab.Direction)
	assert.Equal(t, NeutralArrowColor, ab.Color)

	_, err = g.Connect(a.ID, b.ID)
	assert.True(t, errors.Is(err, ErrDuplicateConnection), "duplicate (A,B) must be rejected, got %v", err)

	ba, err := g.Connect(b.ID, a.ID)
	require.NoError(t, err, "(B,A) must be accepted when (A,B) exists")
	assert.NotEqual(t, ab.ID, ba.ID)

	assert.Equal(t, 2, g.ConnectionCount())
	assert.True(t, g.ConnectionExists(a.ID, b.ID))
	assert.True(t, g.ConnectionExists(b.ID, a.ID))
}

func TestConnectRejections(t *testing.T) {
	g := NewGraph()
	a := g.AddNode("a", 0, 0)

	tests := []struct {
		name     string
		from, to NodeID
		want     error
	}{
		{"self loop", a.ID, a.ID, ErrSelfLoop},
		{"missing start", 42, a.ID, ErrNodeNotFound},
		{"missing end", a.ID, 42, ErrNodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := g.Connect(tt.from, tt.to)
			if !errors.Is(err, tt.want) {
				t.Errorf("Connect(%d, %d) error = %v, want %v", tt.from, tt.to, err, tt.want)
			}
		})
	}
	assert.Zero(t, g.ConnectionCount())
	assert.True(t, IsRejectedConnection(&GraphError{Op: "connect", Entity: "connection", Cause: ErrSelfLoop}))
}

func TestNodeAtUsesInsertionOrder(t *testing.T) {
	g := NewGraph()
	first := g.AddNode("first", 0, 0)
	g.AddNode("second", 50, 25) // overlaps first

	got, ok := g.NodeAt(Pt(75, 40))
	require.True(t, ok)
	assert.Same(t, first, got)

	_, ok = g.NodeAt(Pt(500, 500))
	assert.False(t, ok)
}

func TestFirstOfTypeAndOutgoing(t *testing.T) {
	g := NewGraph()
	g.AddNode(TypeFirewall, 0, 0)
	att := g.AddNode(TypeAttacker, 200, 0)
	g.AddNode(TypeAttacker, 400, 0)
	fw := g.AddNode(TypeFirewall, 600, 0)
	db := g.AddNode(TypeDatabase, 800, 0)

	found, ok := g.FirstOfType(TypeAttacker)
	require.True(t, ok)
	assert.Same(t, att, found)

	_, ok = g.FirstOfType("router")
	assert.False(t, ok)

	_, ok = g.FirstOutgoing(att.ID)
	assert.False(t, ok)

	first, err := g.Connect(att.ID, fw.ID)
	require.NoError(t, err)
	_, err = g.Connect(att.ID, db.ID)
	require.NoError(t, err)

	out, ok := g.FirstOutgoing(att.ID)
	require.True(t, ok)
	assert.Equal(t, first.ID, out.ID)

	from, to, err := g.Endpoints(out)
	require.NoError(t, err)
	assert.Same(t, att, from)
	assert.Same(t, fw, to)
}
