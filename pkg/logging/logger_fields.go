package logging

import (
	"time"
)

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Float64(key string, value float64) Field {
	return Field{Key: key, Value: value}
}

// Duration is written in time.Duration's string form, e.g. "1.5s".
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

// Error records err's message; a nil error is written as null.
func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Analysis field helpers

func Component(name string) Field {
	return String("component", name)
}

// RunID tags every line of one analysis run.
func RunID(id string) Field {
	return String("run_id", id)
}

// Stage names a pipeline stage, e.g. "centrality".
func Stage(name string) Field {
	return String("stage", name)
}

func Term(term string) Field {
	return String("term", term)
}

func Nodes(n int) Field {
	return Int("nodes", n)
}

func Edges(n int) Field {
	return Int("edges", n)
}

func Facts(n int) Field {
	return Int("facts", n)
}

func Latency(d time.Duration) Field {
	return Duration("latency", d)
}

func Count(n int) Field {
	return Int("count", n)
}

func File(p string) Field {
	return String("file", p)
}
