package logging

import (
	"time"
)

// Common field constructors
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Uint64(key string, value uint64) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers

func Component(name string) Field {
	return String("component", name)
}

func NodeID(id uint64) Field {
	return Uint64("node_id", id)
}

func ConnectionID(id uint64) Field {
	return Uint64("connection_id", id)
}

func NodeType(t string) Field {
	return String("node_type", t)
}

func RunID(id string) Field {
	return String("run_id", id)
}

func Hop(seq int) Field {
	return Int("hop", seq)
}

func Mode(m string) Field {
	return String("mode", m)
}

func Position(x, y float64) Field {
	return Field{Key: "pos", Value: [2]float64{x, y}}
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func Path(p string) Field {
	return String("path", p)
}
