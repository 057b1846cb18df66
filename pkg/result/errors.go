package result

import "errors"

// ErrIO covers read/write failure on a results file.
var ErrIO = errors.New("result: io error")
