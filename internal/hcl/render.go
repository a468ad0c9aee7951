package hcl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/slp2graph/internal/config"
)

// Render formats m as a job file that Load reads back to the same model.
func Render(m config.Model) []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	paths := root.AppendNewBlock("paths", nil).Body()
	paths.SetAttributeValue("upload_dir", cty.StringVal(m.Paths.UploadDir))
	paths.SetAttributeValue("scratch_dir", cty.StringVal(m.Paths.ScratchDir))
	paths.SetAttributeValue("import_dir", cty.StringVal(m.Paths.ImportDir))
	root.AppendNewline()

	output := root.AppendNewBlock("output", nil).Body()
	output.SetAttributeValue("schema", cty.StringVal(m.Output.Schema))
	output.SetAttributeValue("edge_policy", cty.StringVal(m.Output.EdgePolicy))
	root.AppendNewline()

	run := root.AppendNewBlock("run", nil).Body()
	run.SetAttributeValue("workers", cty.NumberIntVal(int64(m.Run.Workers)))
	run.SetAttributeValue("dedupe", cty.BoolVal(m.Run.Dedupe))
	run.SetAttributeValue("dedupe_capacity", cty.NumberIntVal(int64(m.Run.DedupeCapacity)))
	run.SetAttributeValue("remove_processed", cty.BoolVal(m.Run.RemoveProcessed))
	run.SetAttributeValue("ledger", cty.StringVal(m.Run.LedgerPath))

	return hclwrite.Format(f.Bytes())
}
