package htmlshot

import (
	"strings"

	"github.com/go-rod/htmlshot/lib/js"
	"github.com/go-rod/htmlshot/lib/utils"
)

// jsCall returns an expression that calls the fn with the json encoded args
func jsCall(fn *js.Function, args ...interface{}) string {
	list := make([]string, 0, len(args))
	for _, arg := range args {
		list = append(list, utils.MustToJSON(arg))
	}
	return "(" + fn.Definition + ")(" + strings.Join(list, ", ") + ")"
}
