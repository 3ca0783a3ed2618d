package analogx

import (
	"fmt"

	"github.com/projectdiscovery/fasttemplate"
)

const (
	// ParenthesisOpen marker - begin of a placeholder
	ParenthesisOpen = "{{"
	// ParenthesisClose marker - end of a placeholder
	ParenthesisClose = "}}"
)

// Report lines printed by the batch tools.
const (
	ReadTemplate    = "read {{clusters}} clusters in {{file}}"
	SplitTemplate   = "{{input}} clusters split into {{output}} clusters in {{elapsed}}"
	GridsTemplate   = "{{clusters}} clusters assembled into {{grids}} grids ({{rows}} by row, {{columns}} by column) in {{elapsed}}"
	PredictTemplate = "{{words}} words predicted from {{grids}} grids in {{elapsed}}"
)

// Replace replaces the placeholders of template with values.
func Replace(template string, values map[string]interface{}) string {
	valuesMap := make(map[string]interface{}, len(values))
	for k, v := range values {
		valuesMap[k] = fmt.Sprint(v)
	}
	return fasttemplate.ExecuteStringStd(template, ParenthesisOpen, ParenthesisClose, valuesMap)
}
