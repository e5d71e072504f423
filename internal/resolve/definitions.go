package resolve

import (
	"idlc/internal/ast"
)

// ResolveDefinition resolves every reference inside def and returns the
// rewritten definition together with the snapshot extended by def's own
// binding. Services and unknown definition kinds bind nothing.
func (r *Resolver) ResolveDefinition(def ast.Definition) (ast.Definition, *Resolver, error) {
	out, next, err := r.resolveDefinition(def)
	if err != nil {
		return nil, nil, inDefinition(err, def.DefName())
	}
	return out, next, nil
}

func (r *Resolver) resolveDefinition(def ast.Definition) (ast.Definition, *Resolver, error) {
	switch d := def.(type) {
	case *ast.Typedef:
		t, err := r.ResolveFieldType(d.Type)
		if err != nil {
			return nil, nil, err
		}
		return &ast.Typedef{Name: d.Name, Type: t}, r.withType(d.Name, t), nil

	case *ast.Enum:
		return d, r.withType(d.Name, &ast.EnumType{Def: d}), nil

	case *ast.Senum:
		return d, r.withType(d.Name, ast.TString), nil

	case *ast.Struct:
		fields, err := r.resolveFields(d.Fields)
		if err != nil {
			return nil, nil, err
		}
		s := &ast.Struct{Name: d.Name, Fields: fields}
		return s, r.withType(d.Name, &ast.StructType{Def: s}), nil

	case *ast.Union:
		fields, err := r.resolveFields(d.Fields)
		if err != nil {
			return nil, nil, err
		}
		u := &ast.Union{Name: d.Name, Fields: fields}
		return u, r.withType(d.Name, &ast.StructType{Def: u}), nil

	case *ast.Exception:
		fields, err := r.resolveFields(d.Fields)
		if err != nil {
			return nil, nil, err
		}
		e := &ast.Exception{Name: d.Name, Fields: fields}
		return e, r.withType(d.Name, &ast.StructType{Def: e}), nil

	case *ast.Const:
		t, err := r.ResolveFieldType(d.Type)
		if err != nil {
			return nil, nil, err
		}
		v, err := r.ResolveConst(d.Value, t)
		if err != nil {
			return nil, nil, err
		}
		c := &ast.Const{Name: d.Name, Type: t, Value: v}
		return c, r.withConst(c), nil

	case *ast.Service:
		fns := make([]*ast.Function, len(d.Functions))
		for i, fn := range d.Functions {
			resolved, err := r.resolveFunction(fn)
			if err != nil {
				return nil, nil, err
			}
			fns[i] = resolved
		}
		return &ast.Service{Name: d.Name, Parent: d.Parent, Functions: fns}, r, nil

	default:
		return def, r, nil
	}
}

// ResolveField resolves the field type and checks its default value, if
// any, against it.
func (r *Resolver) ResolveField(f *ast.Field) (*ast.Field, error) {
	t, err := r.ResolveFieldType(f.Type)
	if err != nil {
		return nil, err
	}
	out := *f
	out.Type = t
	if f.Default != nil {
		v, err := r.ResolveConst(f.Default, t)
		if err != nil {
			return nil, err
		}
		out.Default = v
	}
	return &out, nil
}

func (r *Resolver) resolveFields(fields []*ast.Field) ([]*ast.Field, error) {
	if fields == nil {
		return nil, nil
	}
	out := make([]*ast.Field, len(fields))
	for i, f := range fields {
		resolved, err := r.ResolveField(f)
		if err != nil {
			return nil, err
		}
		out[i] = resolved
	}
	return out, nil
}

func (r *Resolver) resolveFunction(fn *ast.Function) (*ast.Function, error) {
	ret, err := r.ResolveFunctionType(fn.Return)
	if err != nil {
		return nil, err
	}
	args, err := r.resolveFields(fn.Args)
	if err != nil {
		return nil, err
	}
	throws, err := r.resolveFields(fn.Throws)
	if err != nil {
		return nil, err
	}
	return &ast.Function{
		Name:   fn.Name,
		Return: ret,
		Args:   args,
		Throws: throws,
		Oneway: fn.Oneway,
	}, nil
}
