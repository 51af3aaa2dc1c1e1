package pathargs

import "errors"

// Signature construction errors.
var (
	// ErrEmptyParamName indicates a parameter declared without a name.
	ErrEmptyParamName = errors.New("parameter name cannot be empty")
	// ErrDuplicateParam indicates two parameters sharing a name.
	ErrDuplicateParam = errors.New("duplicate parameter")
	// ErrParamOrder indicates a positional parameter declared after a keyword-only one.
	ErrParamOrder = errors.New("positional parameter follows keyword-only parameter")
)

// Binding errors, returned by Bind.
var (
	// ErrNotAFunction indicates that the value given to Bind is not a function.
	ErrNotAFunction = errors.New("value is not a function")
	// ErrVariadicFunction indicates a variadic function, which cannot be described by a fixed table.
	ErrVariadicFunction = errors.New("variadic functions are not supported")
	// ErrParamCountMismatch indicates that the table and the function disagree on the number of parameters.
	ErrParamCountMismatch = errors.New("parameter count mismatch")
	// ErrUnsupportedResults indicates a result list other than (), (T), (error) or (T, error).
	ErrUnsupportedResults = errors.New("unsupported function results")
)

// Call errors, returned by functions produced by Bind.
var (
	// ErrMissingArgument indicates that a required parameter received no value.
	ErrMissingArgument = errors.New("missing required argument")
	// ErrTooManyArguments indicates more positional arguments than positional parameters.
	ErrTooManyArguments = errors.New("too many positional arguments")
	// ErrUnexpectedKeyword indicates a keyword argument that matches no parameter.
	ErrUnexpectedKeyword = errors.New("unexpected keyword argument")
	// ErrMultipleValues indicates a parameter given both positionally and by keyword.
	ErrMultipleValues = errors.New("multiple values for argument")
	// ErrArgumentType indicates a value that cannot be passed as the parameter's Go type.
	ErrArgumentType = errors.New("argument has wrong type")
)
