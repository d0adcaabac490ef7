// generator.go: random generation of closed, integer-valued expressions.
//
// The generator produces programs that always evaluate to a primitive:
// every identifier it emits is bound by an enclosing let or an applied
// function, every function it builds is immediately applied, and every
// match carries a wildcard base case. Useful for fuzzing the pipeline and
// for producing demo programs.
package boo

import (
	"fmt"
	"math/rand"
)

// Generator produces random expressions from a seed. The same seed yields
// the same sequence.
type Generator struct {
	rng  *rand.Rand
	next int // counter for fresh binding names
}

// NewGenerator creates a generator with the given seed.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Expr generates a closed expression of at most the given depth.
func (g *Generator) Expr(depth int) Expr {
	g.next = 0
	return g.expr(depth, nil)
}

func (g *Generator) expr(depth int, scope []Identifier) Expr {
	if depth <= 0 {
		return g.leaf(scope)
	}
	switch g.rng.Intn(6) {
	case 0:
		return g.leaf(scope)
	case 1, 2:
		return g.operator(depth, scope)
	case 3:
		return g.let(depth, scope)
	case 4:
		return g.appliedFunction(depth, scope)
	default:
		return g.match(depth, scope)
	}
}

// leaf is a literal, or an identifier from scope when one exists.
func (g *Generator) leaf(scope []Identifier) Expr {
	if len(scope) > 0 && g.rng.Intn(2) == 0 {
		return IdentifierExpr(scope[g.rng.Intn(len(scope))])
	}
	return PrimitiveExpr(g.literal())
}

func (g *Generator) literal() Integer {
	return IntegerFromInt64(g.rng.Int63n(201) - 100)
}

var generatorOperators = []Identifier{"+", "-", "*"}

func (g *Generator) operator(depth int, scope []Identifier) Expr {
	op := generatorOperators[g.rng.Intn(len(generatorOperators))]
	left := g.expr(depth-1, scope)
	right := g.expr(depth-1, scope)
	return ApplyExpr(ApplyExpr(IdentifierExpr(op), left), right)
}

func (g *Generator) freshName() Identifier {
	g.next++
	return Identifier(fmt.Sprintf("v%d", g.next))
}

func (g *Generator) let(depth int, scope []Identifier) Expr {
	name := g.freshName()
	value := g.expr(depth-1, scope)
	body := g.expr(depth-1, append(scope, name))
	return AssignExpr(name, value, body)
}

// appliedFunction builds `(fn x -> body) argument` so the function cannot
// escape as a value.
func (g *Generator) appliedFunction(depth int, scope []Identifier) Expr {
	param := g.freshName()
	body := g.expr(depth-1, append(scope, param))
	argument := g.expr(depth-1, scope)
	return ApplyExpr(FunctionExpr(param, body), argument)
}

// match generates a scrutinee, a few literal arms, and a wildcard base
// case so the match can never run out of arms.
func (g *Generator) match(depth int, scope []Identifier) Expr {
	value := g.expr(depth-1, scope)
	count := 1 + g.rng.Intn(3)
	arms := make([]MatchArm, 0, count+1)
	for i := 0; i < count; i++ {
		arms = append(arms, MatchArm{
			Pattern: LiteralPattern(g.literal()),
			Result:  g.expr(depth-1, scope),
		})
	}
	arms = append(arms, MatchArm{
		Pattern: AnythingPattern(),
		Result:  g.expr(depth-1, scope),
	})
	return MatchExpr(value, arms)
}
