// Real Estate Marketplace - Property Recommendation Service
// Copyright 2026 Bikku2002
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Bikku2002/Real-Estate-Marketplace

package recommend

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/Bikku2002/Real-Estate-Marketplace--sub000/internal/models"
)

var (
	ruleEnv     *cel.Env
	ruleEnvErr  error
	ruleEnvOnce sync.Once
)

func getRuleEnv() (*cel.Env, error) {
	ruleEnvOnce.Do(func() {
		ruleEnv, ruleEnvErr = cel.NewEnv(
			cel.Variable("property", cel.DynType),
		)
	})
	return ruleEnv, ruleEnvErr
}

// CandidateRule is a compiled operator rule that every candidate must pass
// before scoring, for example:
//
//	property.price <= 20000000 && property.district != "Bhaktapur"
//
// Fields: id, type, district, price, area, view_count, favorite_count,
// availability_status. price and counters are ints, area is a double.
type CandidateRule struct {
	expr string
	prg  cel.Program
}

// CompileRule compiles expr. An empty expression yields a nil rule, which
// allows everything.
func CompileRule(expr string) (*CandidateRule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	env, err := getRuleEnv()
	if err != nil {
		return nil, fmt.Errorf("candidate rule environment: %w", err)
	}

	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile candidate rule %q: %w", expr, iss.Err())
	}
	if t := ast.OutputType(); t != cel.BoolType && t != cel.DynType {
		return nil, fmt.Errorf("candidate rule %q must evaluate to bool, got %s", expr, t)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build candidate rule %q: %w", expr, err)
	}
	return &CandidateRule{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (r *CandidateRule) String() string {
	if r == nil {
		return ""
	}
	return r.expr
}

// Allows evaluates the rule for p. A nil rule allows everything.
func (r *CandidateRule) Allows(p *models.Property) (bool, error) {
	if r == nil {
		return true, nil
	}
	out, _, err := r.prg.Eval(map[string]interface{}{
		"property": propertyActivation(p),
	})
	if err != nil {
		return false, fmt.Errorf("evaluate candidate rule on property %d: %w", p.ID, err)
	}
	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("candidate rule returned %T, want bool", out.Value())
	}
	return allowed, nil
}

func propertyActivation(p *models.Property) map[string]interface{} {
	return map[string]interface{}{
		"id":                  p.ID,
		"type":                string(p.Type),
		"district":            p.District,
		"price":               p.Price,
		"area":                p.Area,
		"view_count":          p.ViewCount,
		"favorite_count":      p.FavoriteCount,
		"availability_status": string(p.Availability),
	}
}
