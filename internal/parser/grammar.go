package parser

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/sql"

	"github.com/bethropolis/stmtree/internal/logger"
)

// DefaultGrammar is the grammar engines are built with when none is configured.
const DefaultGrammar = "sql"

// Grammar is a tree-sitter language registered under a name.
type Grammar struct {
	// Name is the canonical, lower-case name of the grammar.
	Name string

	// Aliases are alternative names accepted by LookupGrammar.
	Aliases []string

	// Language is the tree-sitter language instance.
	Language *sitter.Language
}

var (
	registry struct {
		sync.RWMutex
		byName map[string]*Grammar
	}

	builtinsOnce sync.Once
)

// Register adds g to the registry under its name and aliases.
func Register(g *Grammar) {
	registry.Lock()
	defer registry.Unlock()

	if registry.byName == nil {
		registry.byName = make(map[string]*Grammar)
	}
	for _, name := range append([]string{g.Name}, g.Aliases...) {
		key := strings.ToLower(name)
		if existing, ok := registry.byName[key]; ok && existing != g {
			logger.WarnTagf("parser", "Grammar name %s already registered to %s, overriding with %s",
				key, existing.Name, g.Name)
		}
		registry.byName[key] = g
	}
	logger.DebugTagf("parser", "Registered grammar: %s with aliases: %v", g.Name, g.Aliases)
}

// RegisterBuiltins registers the grammars bundled with the module. It is safe to
// call more than once.
func RegisterBuiltins() {
	builtinsOnce.Do(func() {
		Register(&Grammar{
			Name:     "sql",
			Aliases:  []string{"postgres", "postgresql"},
			Language: sql.GetLanguage(),
		})
	})
}

// LookupGrammar returns the grammar registered under name or one of its aliases.
func LookupGrammar(name string) (*Grammar, error) {
	RegisterBuiltins()

	registry.RLock()
	defer registry.RUnlock()

	g, ok := registry.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGrammar, name)
	}
	return g, nil
}

// Grammars returns every registered grammar once, sorted by name.
func Grammars() []*Grammar {
	RegisterBuiltins()

	registry.RLock()
	defer registry.RUnlock()

	seen := make(map[*Grammar]bool, len(registry.byName))
	result := make([]*Grammar, 0, len(registry.byName))
	for _, g := range registry.byName {
		if !seen[g] {
			seen[g] = true
			result = append(result, g)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}
