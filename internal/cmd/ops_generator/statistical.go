package main

import (
	"bytes"
	"fmt"
	"go/format"
	"log"
	"os"
	"text/template"

	"github.com/gomlx/structinfo/internal/optypes"
)

const statisticalOpsFileName = "gen_statistical_ops.go"

// statisticalDescriptions completes the sentence "<Op> returns ...".
var statisticalDescriptions = map[optypes.OpType]string{
	optypes.Max:      "the maximum value of x",
	optypes.Mean:     "the mean of x",
	optypes.Min:      "the minimum value of x",
	optypes.Prod:     "the product of the values of x",
	optypes.Std:      "the standard deviation of x",
	optypes.Sum:      "the sum of x",
	optypes.Variance: "the variance of x",
}

type statisticalOpInfo struct {
	Name, Description string
}

var statisticalOpsTemplate = template.Must(template.New(statisticalOpsFileName).Parse(`/***** File generated by ./internal/cmd/ops_generator, based on list of statistical ops in internal/optypes. Don't edit it directly. *****/

package structinfo

import (
	"github.com/gomlx/structinfo/internal/optypes"
	"github.com/gomlx/structinfo/types"
)

{{range .}}
// {{.Name}} returns {{.Description}} over the axes configured by attrs.
//
// Reduced axes are removed from the output, or kept with dimension 1 if attrs.KeepDims is set.
func (fn *Function) {{.Name}}(x *Value, attrs types.StatisticalAttrs) (*Value, error) {
	return fn.statisticalOp(optypes.{{.Name}}, x, attrs)
}
{{end}}
`))

// GenerateStatisticalOps writes one Function method per statistical operation.
func GenerateStatisticalOps() {
	var ops []statisticalOpInfo
	for _, op := range optypes.StatisticalOps() {
		description, found := statisticalDescriptions[op]
		if !found {
			must(fmt.Errorf("missing description for statistical op %s", op))
		}
		ops = append(ops, statisticalOpInfo{Name: op.String(), Description: description})
	}
	var buf bytes.Buffer
	must(statisticalOpsTemplate.Execute(&buf, ops))
	contents := must1(format.Source(buf.Bytes()))
	must(os.WriteFile(statisticalOpsFileName, contents, 0644))
	log.Printf("Generated %q with %d statistical ops", statisticalOpsFileName, len(ops))
}
