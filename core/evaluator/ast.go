package evaluator

import (
	"fmt"
	"math"
)

// node - вершина разобранного дерева выражения. Вычисление обходит
// дерево напрямую; имена резолвятся только через таблицы Evaluator,
// больше выражению дотянуться не до чего.
type node interface {
	eval(e *Evaluator) (float64, error)
}

type numberNode struct {
	value float64
}

func (n *numberNode) eval(e *Evaluator) (float64, error) {
	return n.value, nil
}

// identNode - одиночное имя: либо константа, либо опечатка
type identNode struct {
	name string
}

func (n *identNode) eval(e *Evaluator) (float64, error) {
	if v, ok := e.constants[n.name]; ok {
		return v, nil
	}
	if _, ok := e.functions[n.name]; ok {
		return 0, fmt.Errorf("%s является функцией, а не значением", n.name)
	}
	return 0, fmt.Errorf("неизвестный идентификатор %q", n.name)
}

// negateNode - унарный минус. Унарный плюс до дерева не доходит.
type negateNode struct {
	child node
}

func (n *negateNode) eval(e *Evaluator) (float64, error) {
	v, err := n.child.eval(e)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryNode struct {
	op    string
	left  node
	right node
}

func (n *binaryNode) eval(e *Evaluator) (float64, error) {
	a, err := n.left.eval(e)
	if err != nil {
		return 0, err
	}
	b, err := n.right.eval(e)
	if err != nil {
		return 0, err
	}
	apply, ok := e.operators[n.op]
	if !ok {
		return 0, fmt.Errorf("неизвестный оператор %q", n.op)
	}
	return apply(a, b)
}

type callNode struct {
	name string
	args []node
}

func (n *callNode) eval(e *Evaluator) (float64, error) {
	fn, ok := e.functions[n.name]
	if !ok {
		if _, isConst := e.constants[n.name]; isConst {
			return 0, fmt.Errorf("%s нельзя вызвать как функцию", n.name)
		}
		return 0, fmt.Errorf("неизвестная функция %q", n.name)
	}
	if len(n.args) < fn.minArgs || len(n.args) > fn.maxArgs {
		return 0, fmt.Errorf("%s ожидает %s, получено %d", n.name, argCountText(fn.minArgs, fn.maxArgs), len(n.args))
	}
	args := make([]float64, len(n.args))
	for i, argNode := range n.args {
		v, err := argNode.eval(e)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	v, err := fn.call(args)
	if err != nil {
		return 0, err
	}
	// Ошибки области определения, которые функция сама не отловила,
	// например переполнение exp
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s вернула неконечный результат", n.name)
	}
	return v, nil
}

func argCountText(lo, hi int) string {
	if lo == hi {
		if lo == 1 {
			return "1 аргумент"
		}
		return fmt.Sprintf("%d аргумента", lo)
	}
	return fmt.Sprintf("от %d до %d аргументов", lo, hi)
}
