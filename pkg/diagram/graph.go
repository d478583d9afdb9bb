package diagram

// Graph owns the nodes and connections on the canvas in insertion order.
// Scan order matters: hit-testing, attacker lookup and the attack walk all
// take the first match.
//
// Graph is not safe for concurrent use. The editor mutates it from a single
// event goroutine; other goroutines read Snapshot copies.
type Graph struct {
	nodes       []*Node
	connections []*Connection
	nodeIndex   map[NodeID]*Node
	connIndex   map[ConnectionID]*Connection
	pairs       map[[2]NodeID]ConnectionID
	nextNodeID  NodeID
	nextConnID  ConnectionID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:       make([]*Node, 0),
		connections: make([]*Connection, 0),
		nodeIndex:   make(map[NodeID]*Node),
		connIndex:   make(map[ConnectionID]*Connection),
		pairs:       make(map[[2]NodeID]ConnectionID),
		nextNodeID:  1,
		nextConnID:  1,
	}
}

// AddNode places a node of the given type with its top-left corner at (x, y).
func (g *Graph) AddNode(nodeType string, x, y float64) *Node {
	node := &Node{
		ID:     g.nextNodeID,
		Type:   nodeType,
		X:      x,
		Y:      y,
		Width:  NodeWidth,
		Height: NodeHeight,
		Color:  NeutralNodeColor,
	}
	g.nextNodeID++
	g.nodes = append(g.nodes, node)
	g.nodeIndex[node.ID] = node
	return node
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, error) {
	node, ok := g.nodeIndex[id]
	if !ok {
		return nil, nodeError("get", id, ErrNodeNotFound)
	}
	return node, nil
}

// Nodes returns the nodes in insertion order. The slice is shared; callers
// must not append to it.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// NodeAt returns the first node, in insertion order, containing p.
func (g *Graph) NodeAt(p Point) (*Node, bool) {
	for _, node := range g.nodes {
		if node.Contains(p.X, p.Y) {
			return node, true
		}
	}
	return nil, false
}

// FirstOfType returns the first node, in insertion order, of the given type.
func (g *Graph) FirstOfType(nodeType string) (*Node, bool) {
	for _, node := range g.nodes {
		if node.Type == nodeType {
			return node, true
		}
	}
	return nil, false
}

// ConnectionExists reports whether the ordered pair (from, to) is connected.
func (g *Graph) ConnectionExists(from, to NodeID) bool {
	_, ok := g.pairs[[2]NodeID{from, to}]
	return ok
}

// Connect adds a forward connection from -> to. Self loops and duplicate
// ordered pairs are rejected; (B, A) is allowed when (A, B) exists.
func (g *Graph) Connect(from, to NodeID) (*Connection, error) {
	if _, ok := g.nodeIndex[from]; !ok {
		return nil, nodeError("connect", from, ErrNodeNotFound)
	}
	if _, ok := g.nodeIndex[to]; !ok {
		return nil, nodeError("connect", to, ErrNodeNotFound)
	}
	if from == to {
		return nil, connectionError("connect", from, to, ErrSelfLoop)
	}
	if g.ConnectionExists(from, to) {
		return nil, connectionError("connect", from, to, ErrDuplicateConnection)
	}

	conn := &Connection{
		ID:        g.nextConnID,
		From:      from,
		To:        to,
		Direction: DirectionForward,
		Color:     NeutralArrowColor,
	}
	g.nextConnID++
	g.connections = append(g.connections, conn)
	g.connIndex[conn.ID] = conn
	g.pairs[[2]NodeID{from, to}] = conn.ID
	return conn, nil
}

// Connection returns the connection with the given id.
func (g *Graph) Connection(id ConnectionID) (*Connection, error) {
	conn, ok := g.connIndex[id]
	if !ok {
		return nil, &GraphError{Op: "get", Entity: "connection", ID: uint64(id), Cause: ErrConnectionNotFound}
	}
	return conn, nil
}

// Connections returns the connections in insertion order.
func (g *Graph) Connections() []*Connection {
	return g.connections
}

// ConnectionCount returns the number of connections.
func (g *Graph) ConnectionCount() int {
	return len(g.connections)
}

// FirstOutgoing returns the first connection, in insertion order, whose start
// is the given node.
func (g *Graph) FirstOutgoing(id NodeID) (*Connection, bool) {
	for _, conn := range g.connections {
		if conn.From == id {
			return conn, true
		}
	}
	return nil, false
}

// Endpoints resolves both ends of a connection.
func (g *Graph) Endpoints(conn *Connection) (from, to *Node, err error) {
	if from, err = g.Node(conn.From); err != nil {
		return nil, nil, err
	}
	if to, err = g.Node(conn.To); err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
