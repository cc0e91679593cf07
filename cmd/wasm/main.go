//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/MeKo-Tech/polished/internal/color"
	"github.com/MeKo-Tech/polished/internal/expr"
)

// EvalResponse is returned to JavaScript for every call.
type EvalResponse struct {
	Color string `json:"color,omitempty"`
	Error string `json:"error,omitempty"`
}

func (r EvalResponse) toJS() map[string]any {
	if r.Error != "" {
		return map[string]any{"error": r.Error}
	}
	return map[string]any{"color": r.Color}
}

// evalExpr is called from JavaScript with a single expression string,
// e.g. polishedEval("tint 0.25 #00f").
func evalExpr(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return EvalResponse{Error: "missing expression"}.toJS()
	}

	out, err := expr.Eval(args[0].String())
	if err != nil {
		return EvalResponse{Error: err.Error()}.toJS()
	}
	return EvalResponse{Color: out}.toJS()
}

// parseColor normalizes a colour string for the browser.
func parseColor(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return EvalResponse{Error: "missing color"}.toJS()
	}

	out, err := color.ToColorString(color.Text(args[0].String()))
	if err != nil {
		return EvalResponse{Error: err.Error()}.toJS()
	}
	return EvalResponse{Color: out}.toJS()
}

func main() {
	c := make(chan struct{})

	js.Global().Set("polishedEval", js.FuncOf(evalExpr))
	js.Global().Set("polishedParse", js.FuncOf(parseColor))

	fmt.Println("polished WASM module loaded")
	<-c
}
