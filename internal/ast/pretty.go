package ast

import "bytes"

// The pretty printer renders a program as C#-like surface syntax with
// four-space indentation. Node String() methods give compact single-line
// forms; the printer is the multi-line whole-program view used by the CLI.

const indentStep = "    "

func (p *Program) print(out *bytes.Buffer) {
	for _, cd := range p.Classes {
		cd.print(out, "")
		out.WriteString("\n")
	}
}

func (cd *ClassDecl) print(out *bytes.Buffer, indent string) {
	out.WriteString(indent)
	out.WriteString("class ")
	out.WriteString(cd.Name)
	out.WriteString(" {\n")

	inner := indent + indentStep
	for _, item := range cd.Items {
		switch it := item.(type) {
		case *FieldDecl:
			out.WriteString(inner)
			out.WriteString("public ")
			out.WriteString(it.String())
			out.WriteString("\n")
		case *MethodDecl:
			out.WriteString(inner)
			out.WriteString("public ")
			it.printSignature(out)
			out.WriteString(" {\n")
			for _, stmt := range it.Body {
				printStatement(out, stmt, inner+indentStep)
			}
			out.WriteString(inner)
			out.WriteString("}\n")
		}
	}

	out.WriteString(indent)
	out.WriteString("}\n")
}

func printStatement(out *bytes.Buffer, stmt Statement, indent string) {
	if ite, ok := stmt.(*IfThenElse); ok {
		out.WriteString(indent)
		out.WriteString("if (")
		out.WriteString(ite.Cond.String())
		out.WriteString(") {\n")
		for _, s := range ite.Then {
			printStatement(out, s, indent+indentStep)
		}
		out.WriteString(indent)
		out.WriteString("} else {\n")
		for _, s := range ite.Else {
			printStatement(out, s, indent+indentStep)
		}
		out.WriteString(indent)
		out.WriteString("}\n")
		return
	}

	out.WriteString(indent)
	out.WriteString(stmt.String())
	out.WriteString("\n")
}
