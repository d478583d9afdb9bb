package inspect

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/attackgraph/pkg/diagram"
	"github.com/dd0wney/attackgraph/pkg/editor"
)

// SnapshotSource provides the latest rendered scene.
type SnapshotSource interface {
	Snapshot() *editor.Snapshot
}

var pointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Point",
	Fields: graphql.Fields{
		"x": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(diagram.Point).X, nil
		}},
		"y": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(diagram.Point).Y, nil
		}},
	},
})

var nodeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Node",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return formatID(uint64(p.Source.(diagram.Node).ID)), nil
			},
		},
		"type": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(diagram.Node).Type, nil
			},
		},
		"x": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(diagram.Node).X, nil
			},
		},
		"y": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(diagram.Node).Y, nil
			},
		},
		"width": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(diagram.Node).Width, nil
			},
		},
		"height": &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return p.Source.(diagram.Node).Height, nil
			},
		},
		"center": &graphql.Field{
			Type: pointType,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				n := p.Source.(diagram.Node)
				return n.Center(), nil
			},
		},
		"color": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return string(p.Source.(diagram.Node).Color), nil
			},
		},
	},
})

var connectionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Connection",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return formatID(uint64(p.Source.(diagram.Connection).ID)), nil
			},
		},
		"from": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return formatID(uint64(p.Source.(diagram.Connection).From)), nil
			},
		},
		"to": &graphql.Field{
			Type: graphql.ID,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return formatID(uint64(p.Source.(diagram.Connection).To)), nil
			},
		},
		"direction": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return string(p.Source.(diagram.Connection).Direction), nil
			},
		},
		"color": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				return string(p.Source.(diagram.Connection).Color), nil
			},
		},
	},
})

var stateType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EditorState",
	Fields: graphql.Fields{
		"frame": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
			return int(p.Source.(*editor.Snapshot).Frame), nil
		}},
		"mode": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).Mode, nil
		}},
		"pointer": &graphql.Field{Type: pointType, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).Pointer, nil
		}},
		"pendingStart": &graphql.Field{Type: graphql.ID, Resolve: func(p graphql.ResolveParams) (any, error) {
			return optionalID(uint64(p.Source.(*editor.Snapshot).PendingStart)), nil
		}},
		"dragged": &graphql.Field{Type: graphql.ID, Resolve: func(p graphql.ResolveParams) (any, error) {
			return optionalID(uint64(p.Source.(*editor.Snapshot).Dragged)), nil
		}},
		"attacking": &graphql.Field{Type: graphql.Boolean, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).Attacking, nil
		}},
		"run": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).Run, nil
		}},
		"pendingHops": &graphql.Field{Type: graphql.Int, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).PendingHops, nil
		}},
		"lastOutcome": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).LastOutcome, nil
		}},
		"width": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).Width, nil
		}},
		"height": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (any, error) {
			return p.Source.(*editor.Snapshot).Height, nil
		}},
	},
})

// NewSchema builds the read-only query schema over src.
func NewSchema(src SnapshotSource) (graphql.Schema, error) {
	snapshot := func() *editor.Snapshot {
		if s := src.Snapshot(); s != nil {
			return s
		}
		return &editor.Snapshot{Mode: editor.ModeIdle.String()}
	}

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"nodes": &graphql.Field{
				Type: graphql.NewList(nodeType),
				Args: graphql.FieldConfigArgument{
					"type": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					nodes := snapshot().Nodes
					typ, ok := p.Args["type"].(string)
					if !ok || typ == "" {
						return nodes, nil
					}
					filtered := make([]diagram.Node, 0, len(nodes))
					for _, n := range nodes {
						if n.Type == typ {
							filtered = append(filtered, n)
						}
					}
					return filtered, nil
				},
			},
			"node": &graphql.Field{
				Type: nodeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, err := parseID(p.Args["id"])
					if err != nil {
						return nil, err
					}
					for _, n := range snapshot().Nodes {
						if uint64(n.ID) == id {
							return n, nil
						}
					}
					return nil, nil
				},
			},
			"connections": &graphql.Field{
				Type: graphql.NewList(connectionType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return snapshot().Connections, nil
				},
			},
			"state": &graphql.Field{
				Type: stateType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return snapshot(), nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func optionalID(id uint64) any {
	if id == 0 {
		return nil
	}
	return formatID(id)
}

func parseID(v any) (uint64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("invalid id %v", v)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
