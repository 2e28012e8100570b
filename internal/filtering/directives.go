package filtering

import "github.com/vektah/gqlparser/v2/ast"

// Arg builds a directive argument from a prepared AST value.
func Arg(name string, value *ast.Value) *ast.Argument {
	return &ast.Argument{Name: name, Value: value}
}

// StringArg builds a string-valued directive argument.
func StringArg(name, value string) *ast.Argument {
	return Arg(name, &ast.Value{Raw: value, Kind: ast.StringValue})
}

// BooleanArg builds a boolean-valued directive argument.
func BooleanArg(name string, value bool) *ast.Argument {
	raw := "false"
	if value {
		raw = "true"
	}
	return Arg(name, &ast.Value{Raw: raw, Kind: ast.BooleanValue})
}
