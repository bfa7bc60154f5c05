// Copyright © 2026 The rexpr authors

package ast

import "fmt"

// Validate checks the structural invariants of a hand-built tree: no nil
// nodes, non-empty symbol and parameter names, and no missing sentinel used
// as a call argument or head.  Trees produced by the parser always validate.
func Validate(node Node) error {
	return validate(node, "root")
}

func validate(node Node, path string) error {
	switch n := node.(type) {
	case nil:
		return fmt.Errorf("%s: nil node", path)
	case *Constant:
		if n.Type > Character {
			return fmt.Errorf("%s: invalid constant type %d", path, n.Type)
		}
	case *Symbol:
		if n.Name == "" {
			return fmt.Errorf("%s: empty symbol name", path)
		}
	case *Missing:
	case *Call:
		if n.Head != nil && n.Head.Kind() == KindMissing {
			return fmt.Errorf("%s: missing argument used as call head", path)
		}
		if err := validate(n.Head, path+".head"); err != nil {
			return err
		}
		for i, arg := range n.Args {
			argPath := fmt.Sprintf("%s.args[%d]", path, i)
			if arg.Value != nil && arg.Value.Kind() == KindMissing {
				return fmt.Errorf("%s: missing argument used as call argument", argPath)
			}
			if err := validate(arg.Value, argPath); err != nil {
				return err
			}
		}
	case *ParamList:
		seen := make(map[string]bool, len(n.Params))
		for i, p := range n.Params {
			paramPath := fmt.Sprintf("%s.params[%d]", path, i)
			if p.Name == "" {
				return fmt.Errorf("%s: empty parameter name", paramPath)
			}
			if seen[p.Name] {
				return fmt.Errorf("%s: repeated parameter %q", paramPath, p.Name)
			}
			seen[p.Name] = true
			if err := validate(p.Default, paramPath); err != nil {
				return err
			}
		}
	}
	return nil
}
