package resolve

import (
	"fmt"

	"xdrgen/ast"
	"xdrgen/diag"
)

func (r *resolver) invalidCases(d *ast.UnionDef, pos diag.Pos, f string,
	args ...interface{}) error {
	return &diag.InvalidUnionCaseSet{
		Pos:    pos,
		Union:  d.Name(),
		Reason: fmt.Sprintf(f, args...),
	}
}

func (r *resolver) resolveUnion(d *ast.UnionDef) (Type, error) {
	tt, err := r.resolveType(d.TagType)
	if err != nil {
		return nil, err
	}
	u := &Union{TagName: d.TagName, Tag: tt}

	switch under := r.g.Underlying(tt).(type) {
	case *Prim:
		switch under.Kind {
		case ast.PrimInt:
			u.TagKind = TagInt
		case ast.PrimUInt:
			u.TagKind = TagUInt
		case ast.PrimBool:
			u.TagKind = TagBool
		default:
			return nil, r.invalidCases(d, d.Pos(),
				"discriminant type %s is not 32-bit integer, bool, or enum",
				under.Kind)
		}
	case *Enum:
		u.TagKind = TagEnum
		u.TagEnum = under
	default:
		return nil, r.invalidCases(d, d.Pos(),
			"discriminant must be an integer-like or enum type")
	}

	seen := map[int64]bool{}
	for i := range d.Arms {
		da := &d.Arms[i]
		arm := Arm{IsDefault: da.IsDefault}
		for _, ce := range da.Cases {
			v, err := r.eval(ce)
			if err != nil {
				return nil, err
			}
			if seen[v] {
				return nil, r.invalidCases(d, ce.Pos,
					"duplicate case value %d", v)
			}
			seen[v] = true
			c := Case{Value: v}
			switch u.TagKind {
			case TagEnum:
				l, ok := u.TagEnum.Lookup(v)
				if !ok {
					return nil, r.invalidCases(d, ce.Pos,
						"case value %d is not a label of the discriminant enum", v)
				}
				c.Label = l.Name
			case TagBool:
				switch v {
				case 0:
					c.Label = "FALSE"
				case 1:
					c.Label = "TRUE"
				default:
					return nil, r.invalidCases(d, ce.Pos,
						"case value %d out of bool domain", v)
				}
			case TagInt:
				if v < -1<<31 || v > 1<<31-1 {
					return nil, r.invalidCases(d, ce.Pos,
						"case value %d does not fit int", v)
				}
			case TagUInt:
				if v < 0 || v > 0xffffffff {
					return nil, r.invalidCases(d, ce.Pos,
						"case value %d does not fit unsigned int", v)
				}
			}
			arm.Cases = append(arm.Cases, c)
		}
		if da.Field != nil {
			ft, err := r.resolveType(da.Field.Type)
			if err != nil {
				return nil, err
			}
			arm.Name = da.Field.Name
			arm.Type = ft
		}
		if arm.IsDefault {
			u.HasDefault = true
		}
		u.Arms = append(u.Arms, arm)
	}
	return u, nil
}
