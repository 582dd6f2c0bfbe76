// printer.go
//
// Deterministic S-expression rendering of syntax trees.
//
// The output is a single line per tree, stable across runs, meant for the
// CLI's parse subcommand and for golden comparisons in tests:
//
//	(program (def foo () (return (+ 1 2))))
package nolang

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump renders a node as an S-expression.
func Dump(n Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Program:
		b.WriteString("(program")
		for _, d := range n.Elements {
			b.WriteByte(' ')
			writeNode(b, d)
		}
		b.WriteByte(')')
	case *Function:
		fmt.Fprintf(b, "(def %s (%s)", n.Name, strings.Join(n.Args, " "))
		writeStatements(b, n.Body)
		b.WriteByte(')')
	case *ClassDefinition:
		fmt.Fprintf(b, "(class %s", n.Name)
		if n.Super != "" {
			fmt.Fprintf(b, " (super %s)", n.Super)
		}
		for _, d := range n.Body {
			b.WriteByte(' ')
			writeNode(b, d)
		}
		b.WriteByte(')')
	case *ExprStatement:
		b.WriteString("(expr ")
		writeNode(b, n.Expr)
		b.WriteByte(')')
	case *VarDeclaration:
		b.WriteString("(var")
		for _, name := range n.Names {
			b.WriteByte(' ')
			b.WriteString(name)
		}
		b.WriteByte(')')
	case *Assignment:
		fmt.Fprintf(b, "(assign %s ", n.Name)
		writeNode(b, n.Value)
		b.WriteByte(')')
	case *Setattr:
		b.WriteString("(setattr ")
		writeNode(b, n.Target)
		fmt.Fprintf(b, " %s ", n.Name)
		writeNode(b, n.Value)
		b.WriteByte(')')
	case *Return:
		b.WriteString("(return ")
		writeNode(b, n.Expr)
		b.WriteByte(')')
	case *While:
		b.WriteString("(while ")
		writeNode(b, n.Cond)
		writeStatements(b, n.Body)
		b.WriteByte(')')
	case *If:
		b.WriteString("(if ")
		writeNode(b, n.Cond)
		writeStatements(b, n.Body)
		b.WriteByte(')')
	case *Raise:
		b.WriteString("(raise ")
		writeNode(b, n.Expr)
		b.WriteByte(')')
	case *TryExcept:
		b.WriteString("(try")
		writeStatements(b, n.Body)
		fmt.Fprintf(b, " (except %s", strings.Join(n.Excepts, " "))
		writeStatements(b, n.Handler)
		b.WriteByte(')')
		b.WriteByte(')')
	case *Number:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *String:
		b.WriteString(strconv.Quote(n.Value))
	case *Identifier:
		b.WriteString(n.Name)
	case *TrueNode:
		b.WriteString("true")
	case *FalseNode:
		b.WriteString("false")
	case *BinOp:
		fmt.Fprintf(b, "(%s ", n.Op)
		writeNode(b, n.Left)
		b.WriteByte(' ')
		writeNode(b, n.Right)
		b.WriteByte(')')
	case *Or:
		b.WriteString("(or ")
		writeNode(b, n.Left)
		b.WriteByte(' ')
		writeNode(b, n.Right)
		b.WriteByte(')')
	case *And:
		b.WriteString("(and ")
		writeNode(b, n.Left)
		b.WriteByte(' ')
		writeNode(b, n.Right)
		b.WriteByte(')')
	case *Call:
		b.WriteString("(call ")
		writeNode(b, n.Callee)
		for _, a := range n.Args {
			b.WriteByte(' ')
			writeNode(b, a)
		}
		b.WriteByte(')')
	case *Getattr:
		b.WriteString("(getattr ")
		writeNode(b, n.Obj)
		fmt.Fprintf(b, " %s)", n.Name)
	default:
		fmt.Fprintf(b, "(?%T)", n)
	}
}

func writeStatements(b *strings.Builder, stmts []Statement) {
	for _, s := range stmts {
		b.WriteByte(' ')
		writeNode(b, s)
	}
}
