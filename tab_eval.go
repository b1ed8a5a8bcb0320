package htmlshot

import (
	"strings"

	"github.com/go-rod/htmlshot/lib/proto"
	"github.com/tidwall/gjson"
)

// EvaluateAsString runs the expression in the page and converts the result to text the way
// String() of js does. A promise is awaited. A thrown exception is returned as *EvalError.
func (t *Tab) EvaluateAsString(expression string) (string, error) {
	obj, err := t.evaluate(expression)
	if err != nil {
		return "", err
	}
	return stringify(obj), nil
}

func (t *Tab) evaluate(expression string) (*proto.RuntimeRemoteObject, error) {
	res, err := proto.RuntimeEvaluate{
		Expression:    expression,
		ReturnByValue: true,
		AwaitPromise:  true,
	}.Call(t)
	if err != nil {
		return nil, err
	}

	if res.ExceptionDetails != nil {
		return nil, newEvalError(res.ExceptionDetails)
	}
	return res.Result, nil
}

func stringify(obj *proto.RuntimeRemoteObject) string {
	if obj == nil {
		return "undefined"
	}

	if obj.UnserializableValue != "" {
		switch {
		case obj.Type == proto.RuntimeRemoteObjectTypeBigint:
			return strings.TrimSuffix(obj.UnserializableValue, "n")
		case obj.UnserializableValue == "-0":
			return "0"
		}
		return obj.UnserializableValue
	}

	switch obj.Type {
	case proto.RuntimeRemoteObjectTypeUndefined:
		return "undefined"
	case proto.RuntimeRemoteObjectTypeFunction, proto.RuntimeRemoteObjectTypeSymbol:
		return obj.Description
	case proto.RuntimeRemoteObjectTypeObject:
		if obj.Subtype == "null" {
			return "null"
		}
		if obj.Value.Raw == "" {
			return obj.Description
		}
	}

	return stringifyValue(obj.Value.Result, true)
}

// stringifyValue of a json value, the nested null is an empty string like Array.prototype.join
func stringifyValue(v gjson.Result, top bool) string {
	switch {
	case v.Type == gjson.String:
		return v.Str
	case v.Type == gjson.Null:
		if top {
			return "null"
		}
		return ""
	case v.IsArray():
		list := []string{}
		for _, el := range v.Array() {
			list = append(list, stringifyValue(el, false))
		}
		return strings.Join(list, ",")
	case v.IsObject():
		return "[object Object]"
	}
	return v.Raw
}
