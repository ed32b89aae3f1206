package validation

import (
	"context"
	"encoding/json"
)

// Analyzer scores an idea submission with an external model. The returned
// bytes are the model's JSON report, already checked against the report
// schema; they are persisted verbatim.
type Analyzer interface {
	Analyze(ctx context.Context, sub Submission) (json.RawMessage, error)
}
