package proto

// RuntimeRemoteObjectID Unique object identifier.
type RuntimeRemoteObjectID string

// RuntimeExecutionContextID Id of an execution context.
type RuntimeExecutionContextID int

// RuntimeRemoteObjectType enum
type RuntimeRemoteObjectType string

const (
	// RuntimeRemoteObjectTypeObject enum const
	RuntimeRemoteObjectTypeObject RuntimeRemoteObjectType = "object"

	// RuntimeRemoteObjectTypeFunction enum const
	RuntimeRemoteObjectTypeFunction RuntimeRemoteObjectType = "function"

	// RuntimeRemoteObjectTypeUndefined enum const
	RuntimeRemoteObjectTypeUndefined RuntimeRemoteObjectType = "undefined"

	// RuntimeRemoteObjectTypeString enum const
	RuntimeRemoteObjectTypeString RuntimeRemoteObjectType = "string"

	// RuntimeRemoteObjectTypeNumber enum const
	RuntimeRemoteObjectTypeNumber RuntimeRemoteObjectType = "number"

	// RuntimeRemoteObjectTypeBoolean enum const
	RuntimeRemoteObjectTypeBoolean RuntimeRemoteObjectType = "boolean"

	// RuntimeRemoteObjectTypeSymbol enum const
	RuntimeRemoteObjectTypeSymbol RuntimeRemoteObjectType = "symbol"

	// RuntimeRemoteObjectTypeBigint enum const
	RuntimeRemoteObjectTypeBigint RuntimeRemoteObjectType = "bigint"
)

// RuntimeRemoteObject Mirror object referencing original JavaScript object.
type RuntimeRemoteObject struct {
	// Type Object type.
	Type RuntimeRemoteObjectType `json:"type"`

	// Subtype (optional) Object subtype hint. Specified for `object` type values only.
	Subtype string `json:"subtype,omitempty"`

	// ClassName (optional) Object class (constructor) name. Specified for `object` type values only.
	ClassName string `json:"className,omitempty"`

	// Value (optional) Remote object value in case of primitive values or JSON values (if it was requested).
	Value JSON `json:"value,omitempty"`

	// UnserializableValue (optional) Primitive value which can not be JSON-stringified does not have `value`, but gets this
	// property.
	UnserializableValue string `json:"unserializableValue,omitempty"`

	// Description (optional) String representation of the object.
	Description string `json:"description,omitempty"`

	// ObjectID (optional) Unique object identifier (for non-primitive values).
	ObjectID RuntimeRemoteObjectID `json:"objectId,omitempty"`
}

// RuntimeExceptionDetails Detailed information about exception (or error) that was thrown during script compilation or
// execution.
type RuntimeExceptionDetails struct {
	// ExceptionID Exception id.
	ExceptionID int `json:"exceptionId"`

	// Text Exception text, which should be used together with exception object when available.
	Text string `json:"text"`

	// LineNumber Line number of the exception location (0-based).
	LineNumber int `json:"lineNumber"`

	// ColumnNumber Column number of the exception location (0-based).
	ColumnNumber int `json:"columnNumber"`

	// Exception (optional) Exception object if available.
	Exception *RuntimeRemoteObject `json:"exception,omitempty"`
}

// RuntimeCallArgument Represents function call argument.
type RuntimeCallArgument struct {
	// Value (optional) Primitive value or serializable javascript object.
	Value *JSON `json:"value,omitempty"`

	// ObjectID (optional) Remote object handle.
	ObjectID RuntimeRemoteObjectID `json:"objectId,omitempty"`
}

// RuntimeEnable Enables reporting of execution contexts creation.
type RuntimeEnable struct {
}

// MethodName interface
func (m RuntimeEnable) MethodName() string { return "Runtime.enable" }

// Call of the command, sessionID is optional.
func (m RuntimeEnable) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}

// RuntimeEvaluate Evaluates expression on global object.
type RuntimeEvaluate struct {
	// Expression Expression to evaluate.
	Expression string `json:"expression"`

	// ObjectGroup (optional) Symbolic group name that can be used to release multiple objects.
	ObjectGroup string `json:"objectGroup,omitempty"`

	// ReturnByValue (optional) Whether the result is expected to be a JSON object that should be sent by value.
	ReturnByValue bool `json:"returnByValue,omitempty"`

	// AwaitPromise (optional) Whether execution should `await` for resulting value and return once awaited promise is
	// resolved.
	AwaitPromise bool `json:"awaitPromise,omitempty"`

	// UserGesture (optional) Whether execution should be treated as initiated by user in the UI.
	UserGesture bool `json:"userGesture,omitempty"`
}

// MethodName interface
func (m RuntimeEvaluate) MethodName() string { return "Runtime.evaluate" }

// Call of the command, sessionID is optional.
func (m RuntimeEvaluate) Call(c Caller) (res *RuntimeEvaluateResult, err error) {
	res = &RuntimeEvaluateResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// RuntimeEvaluateResult Evaluates expression on global object.
type RuntimeEvaluateResult struct {
	// Result Evaluation result.
	Result *RuntimeRemoteObject `json:"result"`

	// ExceptionDetails (optional) Exception details.
	ExceptionDetails *RuntimeExceptionDetails `json:"exceptionDetails,omitempty"`
}

// RuntimeCallFunctionOn Calls function with given declaration on the given object.
type RuntimeCallFunctionOn struct {
	// FunctionDeclaration Declaration of the function to call.
	FunctionDeclaration string `json:"functionDeclaration"`

	// ObjectID (optional) Identifier of the object to call function on.
	ObjectID RuntimeRemoteObjectID `json:"objectId,omitempty"`

	// Arguments (optional) Call arguments. All call arguments must belong to the same JavaScript world as the target
	// object.
	Arguments []*RuntimeCallArgument `json:"arguments,omitempty"`

	// ReturnByValue (optional) Whether the result is expected to be a JSON object which should be sent by value.
	ReturnByValue bool `json:"returnByValue,omitempty"`

	// AwaitPromise (optional) Whether execution should `await` for resulting value and return once awaited promise is
	// resolved.
	AwaitPromise bool `json:"awaitPromise,omitempty"`
}

// MethodName interface
func (m RuntimeCallFunctionOn) MethodName() string { return "Runtime.callFunctionOn" }

// Call of the command, sessionID is optional.
func (m RuntimeCallFunctionOn) Call(c Caller) (res *RuntimeCallFunctionOnResult, err error) {
	res = &RuntimeCallFunctionOnResult{}
	return res, Call(m.MethodName(), m, res, c)
}

// RuntimeCallFunctionOnResult Calls function with given declaration on the given object.
type RuntimeCallFunctionOnResult struct {
	// Result Call result.
	Result *RuntimeRemoteObject `json:"result"`

	// ExceptionDetails (optional) Exception details.
	ExceptionDetails *RuntimeExceptionDetails `json:"exceptionDetails,omitempty"`
}

// RuntimeReleaseObject Releases remote object with given id.
type RuntimeReleaseObject struct {
	// ObjectID Identifier of the object to release.
	ObjectID RuntimeRemoteObjectID `json:"objectId"`
}

// MethodName interface
func (m RuntimeReleaseObject) MethodName() string { return "Runtime.releaseObject" }

// Call of the command, sessionID is optional.
func (m RuntimeReleaseObject) Call(c Caller) error {
	return Call(m.MethodName(), m, nil, c)
}
