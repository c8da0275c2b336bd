package main

import (
	"github.com/bethropolis/stmtree/internal/coordinator"
	"github.com/bethropolis/stmtree/internal/event"
	"github.com/bethropolis/stmtree/internal/parser"
)

// newCoordinator builds the parsing engine and coordinator described by cfg.
// The returned function releases both.
func newCoordinator(events *event.Manager) (*coordinator.Coordinator, func(), error) {
	engine, err := parser.NewEngineByName(cfg.Parser.Grammar, parser.WithStrict(cfg.Parser.Strict))
	if err != nil {
		return nil, nil, err
	}
	c := coordinator.New(engine,
		coordinator.WithEvents(events),
		coordinator.WithShards(cfg.Coordinator.Shards),
		coordinator.WithWorkers(cfg.Coordinator.Workers),
	)
	return c, func() {
		c.Close()
		engine.Close()
	}, nil
}
