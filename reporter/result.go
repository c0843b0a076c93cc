package reporter

// Result is the outcome of a single call. Err is nil iff the server answered
// with a 2xx status; Body then holds the raw response text. Non-2xx responses
// keep StatusCode and Body for context and carry an apierror.Error.
type Result struct {
	StatusCode int
	Body       string
	Err        error
}

func (r Result) OK() bool {
	return r.Err == nil
}

func failure(err error) Result {
	return Result{Err: err}
}
