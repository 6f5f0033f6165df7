package models

// ToolCallResult is the first function call the model asked for. A nil
// *ToolCallResult means no action was recognized and serializes as null.
type ToolCallResult struct {
	Name string                 `json:"name"`
	Args map[string]interface{} `json:"args"`
}

// StringArg returns args[key] when it holds a string.
func (r *ToolCallResult) StringArg(key string) (string, bool) {
	if r == nil || r.Args == nil {
		return "", false
	}
	s, ok := r.Args[key].(string)
	return s, ok
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
