package ast

// Visitor is invoked by Walk for each node. If the result is nil, children
// of the node are not visited.
type Visitor interface {
	Visit(node Node) Visitor
}

// Walk traverses the AST in depth-first order, calling v.Visit for each
// non-nil node. The switch below is exhaustive over the node variants;
// unknown nodes terminate their branch.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *CALDocument:
		if n.Object != nil {
			Walk(v, n.Object)
		}
		for _, stmt := range n.Statements {
			Walk(v, stmt)
		}

	case *ObjectDeclaration:
		if n.ObjectProperties != nil {
			Walk(v, n.ObjectProperties)
		}
		if n.Properties != nil {
			Walk(v, n.Properties)
		}
		if n.Fields != nil {
			Walk(v, n.Fields)
		}
		if n.Keys != nil {
			Walk(v, n.Keys)
		}
		if n.Controls != nil {
			Walk(v, n.Controls)
		}
		if n.Code != nil {
			Walk(v, n.Code)
		}
		if n.RDLData != nil {
			Walk(v, n.RDLData)
		}

	case *PropertyBlock:
		for _, p := range n.Properties {
			Walk(v, p)
		}

	case *Property:
		if n.Trigger != nil {
			Walk(v, n.Trigger)
		}

	case *TriggerBody:
		for _, vd := range n.Variables {
			Walk(v, vd)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}

	case *FieldsBlock:
		for _, f := range n.Fields {
			Walk(v, f)
		}

	case *FieldDecl:
		if n.Type != nil {
			Walk(v, n.Type)
		}
		for _, p := range n.Properties {
			Walk(v, p)
		}

	case *KeysBlock:
		for _, k := range n.Keys {
			Walk(v, k)
		}

	case *KeyDecl:
		for _, p := range n.Properties {
			Walk(v, p)
		}

	case *ControlsBlock:
		for _, c := range n.Controls {
			Walk(v, c)
		}

	case *ControlDecl, *RDLDataSection:
		// leaves

	case *CodeSection:
		for _, vd := range n.Variables {
			Walk(v, vd)
		}
		for _, tr := range n.Triggers {
			Walk(v, tr)
		}
		for _, pr := range n.Procedures {
			Walk(v, pr)
		}

	case *Procedure:
		for _, p := range n.Parameters {
			Walk(v, p)
		}
		if n.ReturnType != nil {
			Walk(v, n.ReturnType)
		}
		for _, vd := range n.Locals {
			Walk(v, vd)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}

	case *Parameter:
		if n.Type != nil {
			Walk(v, n.Type)
		}

	case *VariableDecl:
		if n.Type != nil {
			Walk(v, n.Type)
		}

	case *BlockStatement:
		for _, stmt := range n.Statements {
			Walk(v, stmt)
		}

	case *IfStatement:
		Walk(v, n.Condition)
		Walk(v, n.Consequence)
		if n.Alternative != nil {
			Walk(v, n.Alternative)
		}

	case *WhileStatement:
		Walk(v, n.Condition)
		Walk(v, n.Body)

	case *ForStatement:
		if n.Variable != nil {
			Walk(v, n.Variable)
		}
		Walk(v, n.From)
		Walk(v, n.To)
		Walk(v, n.Body)

	case *WithStatement:
		Walk(v, n.Subject)
		Walk(v, n.Body)

	case *CaseStatement:
		Walk(v, n.Subject)
		for _, br := range n.Branches {
			for _, val := range br.Values {
				Walk(v, val)
			}
			for _, stmt := range br.Statements {
				Walk(v, stmt)
			}
		}
		for _, stmt := range n.ElseStatements {
			Walk(v, stmt)
		}

	case *RepeatStatement:
		for _, stmt := range n.Body {
			Walk(v, stmt)
		}
		if n.Condition != nil {
			Walk(v, n.Condition)
		}

	case *AssignmentStatement:
		Walk(v, n.Target)
		Walk(v, n.Value)

	case *CallStatement:
		Walk(v, n.Call)

	case *ExitStatement:
		if n.Value != nil {
			Walk(v, n.Value)
		}

	case *EmptyStatement:
		// leaf

	case *UnaryExpression:
		Walk(v, n.Operand)

	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *MemberExpression:
		Walk(v, n.Object)
		if n.Member != nil {
			Walk(v, n.Member)
		}

	case *NamespaceExpression:
		Walk(v, n.Namespace)
		Walk(v, n.Member)

	case *IndexExpression:
		Walk(v, n.Left)
		for _, idx := range n.Indices {
			Walk(v, idx)
		}

	case *CallExpression:
		Walk(v, n.Function)
		for _, arg := range n.Arguments {
			Walk(v, arg)
		}

	case *ParenExpression:
		Walk(v, n.Inner)

	case *ArrayType:
		if n.Element != nil {
			Walk(v, n.Element)
		}

	case *Identifier, *IntegerLiteral, *DecimalLiteral, *StringLiteral,
		*BooleanLiteral, *PrimitiveType, *RecordType, *OptionType,
		*DotNetType, *AutomationType:
		// leaves
	}

	v.Visit(nil)
}

// Inspect traverses the AST calling f for each node; if f returns false the
// node's children are skipped. Mirrors the go/ast convenience wrapper.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if node == nil {
		return nil
	}
	if f(node) {
		return f
	}
	return nil
}
